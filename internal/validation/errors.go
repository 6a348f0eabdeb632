package validation

import "errors"

var errMissingTokenizationData = errors.New("customer data and card details are required together")

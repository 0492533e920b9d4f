package prompt

import "errors"

// ErrMissingVariable reports a placeholder with no entry in the render vars.
var ErrMissingVariable = errors.New("missing template variable")

// ErrTemplateMissing reports a required named template absent from the store.
var ErrTemplateMissing = errors.New("template not found")

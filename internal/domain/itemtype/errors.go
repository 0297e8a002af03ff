package itemtype

import "errors"

var (
	ErrItemTypeNotFound   = errors.New("payroll item type not found")
	ErrItemTypeCodeExists = errors.New("payroll item type code already exists")
)

package itemtype

import (
	"time"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/pkg/validator"
)

type ItemTypeResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	SubjectToAhv bool      `json:"subject_to_ahv"`
	SubjectToAlv bool      `json:"subject_to_alv"`
	SubjectToNbu bool      `json:"subject_to_nbu"`
	SubjectToBvg bool      `json:"subject_to_bvg"`
	SubjectToQst bool      `json:"subject_to_qst"`
	IsActive     bool      `json:"is_active"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewItemTypeResponse(t ItemType) ItemTypeResponse {
	return ItemTypeResponse{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		SubjectToAhv: t.SubjectToAhv,
		SubjectToAlv: t.SubjectToAlv,
		SubjectToNbu: t.SubjectToNbu,
		SubjectToBvg: t.SubjectToBvg,
		SubjectToQst: t.SubjectToQst,
		IsActive:     t.IsActive,
		SortOrder:    t.SortOrder,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// SaveItemTypeRequest is used for create and full-record update.
type SaveItemTypeRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	SubjectToAhv bool   `json:"subject_to_ahv"`
	SubjectToAlv bool   `json:"subject_to_alv"`
	SubjectToNbu bool   `json:"subject_to_nbu"`
	SubjectToBvg bool   `json:"subject_to_bvg"`
	SubjectToQst bool   `json:"subject_to_qst"`
	IsActive     bool   `json:"is_active"`
	SortOrder    int    `json:"sort_order"`
}

func (r *SaveItemTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidItemTypeCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 1-10 digits or uppercase letters",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.SortOrder < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *SaveItemTypeRequest) ToEntity() ItemType {
	return ItemType{
		Code:         r.Code,
		Name:         r.Name,
		SubjectToAhv: r.SubjectToAhv,
		SubjectToAlv: r.SubjectToAlv,
		SubjectToNbu: r.SubjectToNbu,
		SubjectToBvg: r.SubjectToBvg,
		SubjectToQst: r.SubjectToQst,
		IsActive:     r.IsActive,
		SortOrder:    r.SortOrder,
	}
}

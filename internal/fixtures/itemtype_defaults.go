package fixtures

import (
	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/itemtype"
)

// DefaultItemTypes is the standard Swiss wage-component catalog seeded into an
// empty registry. Subjectivity flags follow the usual AHV/ALV/NBU/BVG/QST
// treatment of each component; expense reimbursements are the only fully
// exempt entry.
func DefaultItemTypes() []itemtype.ItemType {
	all := func(code, name string, order int) itemtype.ItemType {
		return itemtype.ItemType{
			Code:         code,
			Name:         name,
			SubjectToAhv: true,
			SubjectToAlv: true,
			SubjectToNbu: true,
			SubjectToBvg: true,
			SubjectToQst: true,
			IsActive:     true,
			SortOrder:    order,
		}
	}

	types := []itemtype.ItemType{
		all("1000", "Monatslohn", 10),
		all("1005", "Stundenlohn", 20),
		all("1030", "13. Monatslohn", 30),
		all("1200", "Gratifikation", 40),
		all("1160", "Ferienentschädigung", 50),
		{
			Code:         "3000",
			Name:         "Kinderzulagen",
			SubjectToQst: true, // family allowances are taxable but not social-insurance wage
			IsActive:     true,
			SortOrder:    60,
		},
		{
			Code:      "6000",
			Name:      "Spesenvergütung",
			IsActive:  true,
			SortOrder: 70,
		},
	}
	return types
}

package models

import "time"

// CostItems holds the named yearly cost line items of a building.
type CostItems struct {
	Premises            float64 `json:"premises" gorm:"column:premises"`
	DistrictHeating     float64 `json:"district_heating" gorm:"column:district_heating"`
	Insurance           float64 `json:"insurance" gorm:"column:insurance"`
	PropertyTax         float64 `json:"property_tax" gorm:"column:property_tax"`
	WasteCollection     float64 `json:"waste_collection" gorm:"column:waste_collection"`
	Water               float64 `json:"water" gorm:"column:water"`
	Sundries            float64 `json:"sundries" gorm:"column:sundries"`
	Internet            float64 `json:"internet" gorm:"column:internet"`
	OwnersAssociation   float64 `json:"owners_association" gorm:"column:owners_association"`
	Administration      float64 `json:"administration" gorm:"column:administration"`
	Accounting          float64 `json:"accounting" gorm:"column:accounting"`
	Caretaker           float64 `json:"caretaker" gorm:"column:caretaker"`
	ExteriorMaintenance float64 `json:"exterior_maintenance" gorm:"column:exterior_maintenance"`
	Other               float64 `json:"other" gorm:"column:other"`
}

// CostLine is a labelled cost item, in display order.
type CostLine struct {
	Key    string
	Label  string
	Amount float64
}

// Lines returns the cost items in the order they are shown on forms and exports.
func (c CostItems) Lines() []CostLine {
	return []CostLine{
		{"premises", "Premises", c.Premises},
		{"district_heating", "District heating", c.DistrictHeating},
		{"insurance", "Insurance", c.Insurance},
		{"property_tax", "Property tax", c.PropertyTax},
		{"waste_collection", "Waste collection", c.WasteCollection},
		{"water", "Water", c.Water},
		{"sundries", "Sundries", c.Sundries},
		{"internet", "Internet", c.Internet},
		{"owners_association", "Owners' association", c.OwnersAssociation},
		{"administration", "Administration", c.Administration},
		{"accounting", "Accounting", c.Accounting},
		{"caretaker", "Caretaker", c.Caretaker},
		{"exterior_maintenance", "Exterior maintenance", c.ExteriorMaintenance},
		{"other", "Other", c.Other},
	}
}

// Set assigns the item named key and reports whether key is a known cost item.
func (c *CostItems) Set(key string, amount float64) bool {
	var field *float64
	switch key {
	case "premises":
		field = &c.Premises
	case "district_heating":
		field = &c.DistrictHeating
	case "insurance":
		field = &c.Insurance
	case "property_tax":
		field = &c.PropertyTax
	case "waste_collection":
		field = &c.WasteCollection
	case "water":
		field = &c.Water
	case "sundries":
		field = &c.Sundries
	case "internet":
		field = &c.Internet
	case "owners_association":
		field = &c.OwnersAssociation
	case "administration":
		field = &c.Administration
	case "accounting":
		field = &c.Accounting
	case "caretaker":
		field = &c.Caretaker
	case "exterior_maintenance":
		field = &c.ExteriorMaintenance
	case "other":
		field = &c.Other
	default:
		return false
	}
	*field = amount
	return true
}

// Sum adds up all cost line items.
func (c CostItems) Sum() float64 {
	var total float64
	for _, line := range c.Lines() {
		total += line.Amount
	}
	return total
}

// Building is a tracked investment property.
type Building struct {
	ID               int64     `json:"id" gorm:"column:id;primaryKey"`
	Name             string    `json:"name" gorm:"column:name"`
	Address          string    `json:"address" gorm:"column:address"`
	TotalArea        float64   `json:"total_area" gorm:"column:total_area"`
	UnitCount        int       `json:"unit_count" gorm:"column:unit_count"`
	AcquisitionPrice float64   `json:"acquisition_price" gorm:"column:acquisition_price"`
	RentalIncome     float64   `json:"rental_income" gorm:"column:rental_income"`
	Costs            CostItems `json:"costs" gorm:"embedded"`
	TotalCosts       float64   `json:"total_costs" gorm:"column:total_costs"`
	Comment          string    `json:"comment" gorm:"column:comment"`
	Latitude         *float64  `json:"latitude" gorm:"column:latitude"`
	Longitude        *float64  `json:"longitude" gorm:"column:longitude"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName maps Building onto the buildings table.
func (Building) TableName() string {
	return "buildings"
}

// FillTotalCosts sets TotalCosts from the line items when it was left at zero.
func (b *Building) FillTotalCosts() {
	if b.TotalCosts == 0 {
		b.TotalCosts = b.Costs.Sum()
	}
}

// HasCoordinates reports whether the building has been geocoded.
func (b *Building) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}

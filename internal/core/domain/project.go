package domain

import "time"

// ProjectCategory classifies an environmental project.
type ProjectCategory string

const (
	CategoryRenewableEnergy    ProjectCategory = "renewable_energy"
	CategoryWasteManagement    ProjectCategory = "waste_management"
	CategoryWaterConservation  ProjectCategory = "water_conservation"
	CategoryForestry           ProjectCategory = "forestry"
	CategoryAgriculture        ProjectCategory = "agriculture"
	CategoryTransportation     ProjectCategory = "transportation"
	CategoryBuildingEfficiency ProjectCategory = "building_efficiency"
	CategoryEducation          ProjectCategory = "education"
	CategoryResearch           ProjectCategory = "research"
	CategoryOther              ProjectCategory = "other"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	StatusPlanned    ProjectStatus = "planned"
	StatusInProgress ProjectStatus = "in_progress"
	StatusOnHold     ProjectStatus = "on_hold"
	StatusCompleted  ProjectStatus = "completed"
	StatusCancelled  ProjectStatus = "cancelled"
)

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Project is the aggregate the authorization layer governs. ManagerID is the
// owning user's id; ownership checks are a plain equality against it.
type Project struct {
	ID                   string          `json:"id" bson:"-"`
	Name                 string          `json:"name" bson:"name"`
	Description          string          `json:"description,omitempty" bson:"description,omitempty"`
	Category             ProjectCategory `json:"category" bson:"category"`
	Status               ProjectStatus   `json:"status" bson:"status"`
	StartDate            time.Time       `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate              time.Time       `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Budget               float64         `json:"budget,omitempty" bson:"budget,omitempty"`
	ActualCost           float64         `json:"actual_cost,omitempty" bson:"actual_cost,omitempty"`
	Location             string          `json:"location,omitempty" bson:"location,omitempty"`
	Coordinates          *Coordinates    `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	ImpactScore          int             `json:"impact_score,omitempty" bson:"impact_score,omitempty"`
	SustainabilityRating int             `json:"sustainability_rating,omitempty" bson:"sustainability_rating,omitempty"`
	ManagerID            string          `json:"manager_id" bson:"manager_id"`
	TeamSize             int             `json:"team_size,omitempty" bson:"team_size,omitempty"`
	Public               bool            `json:"is_public" bson:"is_public"`
	CreatedAt            time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" bson:"updated_at"`
}

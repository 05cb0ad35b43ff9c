package handler

import (
	"time"

	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
)

type coordinatesSchema struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type createProjectRequest struct {
	Name                 string             `json:"name" validate:"required,max=200"`
	Description          string             `json:"description,omitempty" validate:"max=1000"`
	Category             string             `json:"category" validate:"required,oneof=renewable_energy waste_management water_conservation forestry agriculture transportation building_efficiency education research other"`
	StartDate            time.Time          `json:"start_date,omitempty"`
	EndDate              time.Time          `json:"end_date,omitempty"`
	Budget               float64            `json:"budget,omitempty" validate:"gte=0"`
	Location             string             `json:"location,omitempty" validate:"max=500"`
	Coordinates          *coordinatesSchema `json:"coordinates,omitempty"`
	ImpactScore          int                `json:"impact_score,omitempty" validate:"omitempty,min=1,max=10"`
	SustainabilityRating int                `json:"sustainability_rating,omitempty" validate:"omitempty,min=1,max=5"`
	TeamSize             int                `json:"team_size,omitempty" validate:"gte=0"`
	Public               bool               `json:"is_public"`
}

type updateProjectRequest struct {
	Name                 *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Description          *string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	Status               *string    `json:"status,omitempty" validate:"omitempty,oneof=planned in_progress on_hold completed cancelled"`
	EndDate              *time.Time `json:"end_date,omitempty"`
	Budget               *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	ActualCost           *float64   `json:"actual_cost,omitempty" validate:"omitempty,gte=0"`
	Location             *string    `json:"location,omitempty" validate:"omitempty,max=500"`
	ImpactScore          *int       `json:"impact_score,omitempty" validate:"omitempty,min=1,max=10"`
	SustainabilityRating *int       `json:"sustainability_rating,omitempty" validate:"omitempty,min=1,max=5"`
	TeamSize             *int       `json:"team_size,omitempty" validate:"omitempty,gte=0"`
	Public               *bool      `json:"is_public,omitempty"`
}

type listProjectsResponse struct {
	Items      []*domain.Project `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func (r createProjectRequest) toInput() ports.CreateProjectInput {
	input := ports.CreateProjectInput{
		Name:                 r.Name,
		Description:          r.Description,
		Category:             r.Category,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		Budget:               r.Budget,
		Location:             r.Location,
		ImpactScore:          r.ImpactScore,
		SustainabilityRating: r.SustainabilityRating,
		TeamSize:             r.TeamSize,
		Public:               r.Public,
	}
	if r.Coordinates != nil {
		input.Coordinates = &domain.Coordinates{Lat: r.Coordinates.Lat, Lng: r.Coordinates.Lng}
	}
	return input
}

func (r updateProjectRequest) toInput() ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		Name:                 r.Name,
		Description:          r.Description,
		Status:               r.Status,
		EndDate:              r.EndDate,
		Budget:               r.Budget,
		ActualCost:           r.ActualCost,
		Location:             r.Location,
		ImpactScore:          r.ImpactScore,
		SustainabilityRating: r.SustainabilityRating,
		TeamSize:             r.TeamSize,
		Public:               r.Public,
	}
}

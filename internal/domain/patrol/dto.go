package patrol

import (
	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type RoutePointInput struct {
	CheckpointID string   `json:"checkpoint_id"`
	Order        int      `json:"order"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

type CreatePatrolRequest struct {
	BranchID    string            `json:"branch_id"`
	Name        string            `json:"name"`
	RoutePoints []RoutePointInput `json:"route_points"`
}

func (r CreatePatrolRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "must be a valid uuid"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if err := ValidateRouteOrders(r.RoutePoints); err != nil {
		errs = append(errs, validator.ValidationError{Field: "route_points", Message: err.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateRouteOrders checks that orders are exactly the set 1..N.
func ValidateRouteOrders(points []RoutePointInput) error {
	seen := make(map[int]bool, len(points))
	for _, p := range points {
		if p.Order < 1 || p.Order > len(points) || seen[p.Order] {
			return ErrInvalidRouteOrder
		}
		seen[p.Order] = true
	}
	return nil
}

type UpdateRouteRequest struct {
	PatrolID    string            `json:"-"`
	RoutePoints []RoutePointInput `json:"route_points"`
}

func (r UpdateRouteRequest) Validate() error {
	if err := ValidateRouteOrders(r.RoutePoints); err != nil {
		return validator.ValidationErrors{{Field: "route_points", Message: err.Error()}}
	}
	return nil
}

type RoutePointResponse struct {
	ID         string                         `json:"id"`
	Order      int                            `json:"order"`
	Latitude   *float64                       `json:"latitude,omitempty"`
	Longitude  *float64                       `json:"longitude,omitempty"`
	Checkpoint *checkpoint.CheckpointResponse `json:"checkpoint,omitempty"`
}

type PatrolResponse struct {
	ID          string               `json:"id"`
	BranchID    string               `json:"branch_id"`
	Name        string               `json:"name"`
	RoutePoints []RoutePointResponse `json:"route_points"`
}

func ToResponse(p Patrol) PatrolResponse {
	points := make([]RoutePointResponse, 0, len(p.RoutePoints))
	for _, rp := range p.RoutePoints {
		point := RoutePointResponse{
			ID:        rp.ID,
			Order:     rp.Order,
			Latitude:  rp.Latitude,
			Longitude: rp.Longitude,
		}
		if rp.Checkpoint != nil {
			resp := checkpoint.ToResponse(*rp.Checkpoint)
			point.Checkpoint = &resp
		}
		points = append(points, point)
	}
	return PatrolResponse{
		ID:          p.ID,
		BranchID:    p.BranchID,
		Name:        p.Name,
		RoutePoints: points,
	}
}

package api

import (
	"fmt"

	"satcover/internal/model"
)

func validatePlanRequest(req *model.PlanRequest) error {
	if req.Algorithm != "" && req.Algorithm != "greedy" && req.Algorithm != "mincost" {
		return fmt.Errorf("invalid algorithm: %s", req.Algorithm)
	}
	if req.Window != nil {
		if req.Window.End < req.Window.Start {
			return fmt.Errorf("window end must be >= start")
		}
	}
	return nil
}

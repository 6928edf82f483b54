// controller/controllers.go
package controller

import "github.com/dev-mohitbeniwal/ems/api/service"

type Controllers struct {
	Policy     *PolicyController
	Compliance *ComplianceController
	Category   *CategoryController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Policy:     NewPolicyController(services.Policy),
		Compliance: NewComplianceController(services.Compliance),
		Category:   NewCategoryController(services.Category),
	}
}

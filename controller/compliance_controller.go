// controller/compliance_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/middleware"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/service"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

// ComplianceController exposes the publish/acknowledge workflow.
type ComplianceController struct {
	complianceService service.IComplianceService
	now               func() time.Time
}

func NewComplianceController(complianceService service.IComplianceService) *ComplianceController {
	return &ComplianceController{
		complianceService: complianceService,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRoutes registers the API routes
func (cc *ComplianceController) RegisterRoutes(r *gin.RouterGroup) {
	manage := middleware.RequireRoles(model.RoleAdmin, model.RoleHR)

	policies := r.Group("/policies")
	{
		policies.GET("/pending", cc.Pending)
		policies.GET("/my-compliance", cc.MyCompliance)
		policies.GET("/compliance-report", manage, cc.ComplianceReport)
		policies.POST("/:id/publish", manage, cc.Publish)
		policies.POST("/:id/archive", manage, cc.Archive)
		policies.POST("/:id/acknowledge", cc.Acknowledge)
		policies.POST("/:id/sync-acknowledgments", manage, cc.SyncAcknowledgments)
		policies.GET("/:id/acknowledgment-stats", manage, cc.AcknowledgmentStats)
	}
}

// Publish endpoint
func (cc *ComplianceController) Publish(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}

	policy, err := cc.complianceService.Publish(c, principal, policyID)
	if err != nil {
		if policy != nil {
			// The transition is committed; only part of the ledger is missing.
			respondWithServiceError(c, err, "Policy published but acknowledgment rows are incomplete; run sync-acknowledgments")
			return
		}
		respondWithServiceError(c, err, "Failed to publish policy")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// Archive endpoint
func (cc *ComplianceController) Archive(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}

	policy, err := cc.complianceService.Archive(c, principal, policyID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to archive policy")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// SyncAcknowledgments endpoint
func (cc *ComplianceController) SyncAcknowledgments(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}
	created, err := cc.complianceService.SyncLedger(c, principal, policyID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to sync acknowledgments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy_id": policyID, "created": created})
}

// Acknowledge endpoint
func (cc *ComplianceController) Acknowledge(c *gin.Context) {
	var req model.AcknowledgeRequest
	// An empty body is a plain acknowledgment.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid acknowledgment data", err)
			return
		}
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}

	ack, err := cc.complianceService.Acknowledge(c, principal, policyID, req)
	if err != nil {
		respondWithServiceError(c, err, "Failed to acknowledge policy")
		return
	}

	c.JSON(http.StatusOK, ack)
}

// Pending endpoint
func (cc *ComplianceController) Pending(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	policies, err := cc.complianceService.Pending(c, principal)
	if err != nil {
		respondWithServiceError(c, err, "Failed to list pending policies")
		return
	}

	c.JSON(http.StatusOK, policies)
}

// MyCompliance endpoint
func (cc *ComplianceController) MyCompliance(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	summary, err := cc.complianceService.Summary(c, principal, cc.now())
	if err != nil {
		respondWithServiceError(c, err, "Failed to build compliance summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ComplianceReport endpoint
func (cc *ComplianceController) ComplianceReport(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	report, err := cc.complianceService.OrgReport(c, principal, cc.now())
	if err != nil {
		respondWithServiceError(c, err, "Failed to build compliance report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// AcknowledgmentStats endpoint
func (cc *ComplianceController) AcknowledgmentStats(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}

	stats, err := cc.complianceService.PolicyStats(c, principal, policyID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to compute acknowledgment stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// controller/policy_controller.go
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/middleware"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/service"
	"github.com/dev-mohitbeniwal/ems/api/util"
	helper_util "github.com/dev-mohitbeniwal/ems/api/util/helper"
)

// maxAttachmentSize caps multipart uploads.
const maxAttachmentSize = 20 << 20

type PolicyController struct {
	policyService service.IPolicyService
}

func NewPolicyController(policyService service.IPolicyService) *PolicyController {
	return &PolicyController{
		policyService: policyService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PolicyController) RegisterRoutes(r *gin.RouterGroup) {
	manage := middleware.RequireRoles(model.RoleAdmin, model.RoleHR)

	policies := r.Group("/policies")
	{
		policies.GET("", pc.ListPolicies)
		policies.POST("", manage, pc.CreatePolicy)
		policies.GET("/search", pc.SearchPolicies)
		policies.GET("/:id", pc.GetPolicy)
		policies.PUT("/:id", manage, pc.UpdatePolicy)
		policies.DELETE("/:id", manage, pc.DeletePolicy)
		policies.GET("/:id/audit", manage, pc.PolicyAudit)
		policies.PUT("/:id/attachment", manage, pc.UploadAttachment)
		policies.GET("/:id/attachment", pc.GetAttachment)
	}
}

// CreatePolicy endpoint
func (pc *PolicyController) CreatePolicy(c *gin.Context) {
	var input model.PolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid policy data", ems_errors.ErrInvalidPolicyData)
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	createdPolicy, err := pc.policyService.CreatePolicy(c, principal, input)
	if err != nil {
		respondWithServiceError(c, err, "Failed to create policy")
		return
	}

	c.JSON(http.StatusCreated, createdPolicy)
}

// UpdatePolicy endpoint
func (pc *PolicyController) UpdatePolicy(c *gin.Context) {
	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}
	var input model.PolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid policy data", err)
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	updatedPolicy, err := pc.policyService.UpdatePolicy(c, principal, policyID, input)
	if err != nil {
		respondWithServiceError(c, err, "Failed to update policy")
		return
	}

	c.JSON(http.StatusOK, updatedPolicy)
}

// DeletePolicy endpoint
func (pc *PolicyController) DeletePolicy(c *gin.Context) {
	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	if err := pc.policyService.DeletePolicy(c, principal, policyID); err != nil {
		respondWithServiceError(c, err, "Failed to delete policy")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPolicy endpoint
func (pc *PolicyController) GetPolicy(c *gin.Context) {
	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	policy, err := pc.policyService.GetPolicy(c, principal, policyID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve policy")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// ListPolicies endpoint
func (pc *PolicyController) ListPolicies(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}
	mandatory, err := helper_util.GetOptionalBool(c, "is_mandatory")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid is_mandatory parameter", err)
		return
	}
	filter := model.PolicyFilter{
		Status:      model.PolicyStatus(c.Query("status")),
		CategoryID:  c.Query("category_id"),
		Priority:    model.PolicyPriority(c.Query("priority")),
		IsMandatory: mandatory,
		Limit:       limit,
		Offset:      offset,
	}
	if !validStatusFilter(filter.Status) {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid status filter", ems_errors.ErrInvalidSearchCriteria)
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	policies, err := pc.policyService.ListPolicies(c, principal, filter)
	if err != nil {
		respondWithServiceError(c, err, "Failed to list policies")
		return
	}

	c.JSON(http.StatusOK, policies)
}

func validStatusFilter(status model.PolicyStatus) bool {
	switch status {
	case "", model.PolicyStatusDraft, model.PolicyStatusPublished, model.PolicyStatusArchived:
		return true
	}
	return false
}

// SearchPolicies endpoint
func (pc *PolicyController) SearchPolicies(c *gin.Context) {
	var criteria model.PolicySearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", err)
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	policies, err := pc.policyService.SearchPolicies(c, principal, criteria)
	if err != nil {
		respondWithServiceError(c, err, "Failed to search policies")
		return
	}

	c.JSON(http.StatusOK, policies)
}

// UploadAttachment endpoint
func (pc *PolicyController) UploadAttachment(c *gin.Context) {
	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Missing attachment file", err)
		return
	}
	if header.Size > maxAttachmentSize {
		util.RespondWithError(c, http.StatusRequestEntityTooLarge, "Attachment too large", ems_errors.ErrInvalidPolicyData)
		return
	}
	file, err := header.Open()
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Unreadable attachment file", err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	policy, err := pc.policyService.UploadAttachment(c, principal, policyID, header.Filename, file, header.Size, contentType)
	if err != nil {
		respondWithServiceError(c, err, "Failed to upload attachment")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// GetAttachment endpoint
func (pc *PolicyController) GetAttachment(c *gin.Context) {
	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	url, err := pc.policyService.AttachmentURL(c, principal, policyID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to fetch attachment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PolicyAudit endpoint
func (pc *PolicyController) PolicyAudit(c *gin.Context) {
	policyID, ok := idParam(c, ems_errors.ErrPolicyNotFound)
	if !ok {
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	filter := audit.QueryFilter{
		UserID: c.Query("user_id"),
		Action: c.Query("action"),
	}
	var err error
	if filter.From, err = optionalTime(c, "from"); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid from parameter", err)
		return
	}
	if filter.To, err = optionalTime(c, "to"); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid to parameter", err)
		return
	}
	if raw := c.Query("limit"); raw != "" {
		if filter.Limit, err = strconv.Atoi(raw); err != nil || filter.Limit < 1 || filter.Limit > helper_util.MaxPageSize {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid limit parameter", ems_errors.ErrInvalidPagination)
			return
		}
	}

	logs, err := pc.policyService.PolicyAudit(c, principal, policyID, filter)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve audit trail")
		return
	}

	c.JSON(http.StatusOK, logs)
}

func optionalTime(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	return helper_util.ParseTime(raw)
}

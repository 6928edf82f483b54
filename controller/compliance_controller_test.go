package controller_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dev-mohitbeniwal/ems/api/controller"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
	mock_service "github.com/dev-mohitbeniwal/ems/api/test/service_mock"
)

func TestComplianceController_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCompliance := mock_service.NewMockIComplianceService(ctrl)
	router, api := setupRouter(&hrUser)
	controller.NewComplianceController(mockCompliance).RegisterRoutes(api)

	tests := []struct {
		name     string
		path     string
		setup    func()
		wantCode int
	}{
		{
			name: "publish",
			path: "/policies/" + policyOne + "/publish",
			setup: func() {
				mockCompliance.EXPECT().Publish(gomock.Any(), hrUser, policyOne).
					Return(&model.Policy{ID: policyOne, Status: model.PolicyStatusPublished}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "publish twice",
			path: "/policies/" + policyOne + "/publish",
			setup: func() {
				mockCompliance.EXPECT().Publish(gomock.Any(), hrUser, policyOne).
					Return(nil, ems_errors.ErrPolicyAlreadyPublished)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "publish archived",
			path: "/policies/" + policyOne + "/publish",
			setup: func() {
				mockCompliance.EXPECT().Publish(gomock.Any(), hrUser, policyOne).
					Return(nil, ems_errors.ErrPolicyArchived)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "publish with incomplete fan-out",
			path: "/policies/" + policyOne + "/publish",
			setup: func() {
				mockCompliance.EXPECT().Publish(gomock.Any(), hrUser, policyOne).
					Return(&model.Policy{ID: policyOne}, fmt.Errorf("policy published but acknowledgment fan-out failed: %w", ems_errors.ErrDatabaseOperation))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "archive",
			path: "/policies/" + policyOne + "/archive",
			setup: func() {
				mockCompliance.EXPECT().Archive(gomock.Any(), hrUser, policyOne).
					Return(&model.Policy{ID: policyOne, Status: model.PolicyStatusArchived}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "archive missing",
			path: "/policies/" + policyOne + "/archive",
			setup: func() {
				mockCompliance.EXPECT().Archive(gomock.Any(), hrUser, policyOne).
					Return(nil, ems_errors.ErrPolicyNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "sync",
			path: "/policies/" + policyOne + "/sync-acknowledgments",
			setup: func() {
				mockCompliance.EXPECT().SyncLedger(gomock.Any(), hrUser, policyOne).Return(int64(3), nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "sync draft",
			path: "/policies/" + policyOne + "/sync-acknowledgments",
			setup: func() {
				mockCompliance.EXPECT().SyncLedger(gomock.Any(), hrUser, policyOne).Return(int64(0), ems_errors.ErrPolicyNotPublished)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			req, _ := http.NewRequest("POST", tt.path, nil)
			w := serve(router, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestComplianceController_Acknowledge(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCompliance := mock_service.NewMockIComplianceService(ctrl)
	router, api := setupRouter(&employeeUser)
	controller.NewComplianceController(mockCompliance).RegisterRoutes(api)

	t.Run("captures origin", func(t *testing.T) {
		mockCompliance.EXPECT().
			Acknowledge(gomock.Any(), employeeUser, policyOne, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Principal, _ string, req model.AcknowledgeRequest) (*model.PolicyAcknowledgment, error) {
				assert.Equal(t, "Eve", req.Signature)
				assert.Equal(t, "read it", req.Comments)
				assert.Equal(t, "192.0.2.1", req.IPAddress)
				assert.Equal(t, "policy-tests/1.0", req.UserAgent)
				return &model.PolicyAcknowledgment{PolicyID: policyOne, UserID: employeeUser.ID, Acknowledged: true}, nil
			})

		req := httptest.NewRequest("POST", "/policies/"+policyOne+"/acknowledge", strings.NewReader(`{"signature":"Eve","comments":"read it"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "policy-tests/1.0")
		w := serve(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var ack model.PolicyAcknowledgment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
		assert.True(t, ack.Acknowledged)
	})

	t.Run("empty body", func(t *testing.T) {
		mockCompliance.EXPECT().
			Acknowledge(gomock.Any(), employeeUser, policyTwo, gomock.Any()).
			Return(&model.PolicyAcknowledgment{PolicyID: policyTwo, Acknowledged: true}, nil)

		req, _ := http.NewRequest("POST", "/policies/"+policyTwo+"/acknowledge", nil)
		w := serve(router, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	rejections := map[string]error{
		"signature required": ems_errors.ErrSignatureRequired,
		"already":            ems_errors.ErrAlreadyAcknowledged,
		"not published":      ems_errors.ErrPolicyNotAcknowledgeable,
		"not applicable":     ems_errors.ErrPolicyNotApplicable,
	}
	for name, err := range rejections {
		t.Run(name, func(t *testing.T) {
			mockCompliance.EXPECT().
				Acknowledge(gomock.Any(), employeeUser, policyThree, gomock.Any()).
				Return(nil, err)

			req, _ := http.NewRequest("POST", "/policies/"+policyThree+"/acknowledge", nil)
			w := serve(router, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, err.Error(), errorBody(t, w))
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/policies/"+policyOne+"/acknowledge", strings.NewReader(`{"signature":`))
		w := serve(router, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("employees cannot publish", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/policies/"+policyOne+"/publish", nil)
		w := serve(router, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestComplianceController_Reads(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCompliance := mock_service.NewMockIComplianceService(ctrl)

	t.Run("pending", func(t *testing.T) {
		router, api := setupRouter(&employeeUser)
		controller.NewComplianceController(mockCompliance).RegisterRoutes(api)

		mockCompliance.EXPECT().Pending(gomock.Any(), employeeUser).
			Return([]*model.Policy{{ID: "b"}, {ID: "a"}}, nil)

		req, _ := http.NewRequest("GET", "/policies/pending", nil)
		w := serve(router, req)
		require.Equal(t, http.StatusOK, w.Code)
		var got []model.Policy
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "b", got[0].ID)
	})

	t.Run("my compliance", func(t *testing.T) {
		router, api := setupRouter(&employeeUser)
		controller.NewComplianceController(mockCompliance).RegisterRoutes(api)

		before := time.Now().UTC()
		mockCompliance.EXPECT().Summary(gomock.Any(), employeeUser, gomock.Any()).
			DoAndReturn(func(_ context.Context, p model.Principal, now time.Time) (*model.ComplianceSummary, error) {
				assert.False(t, now.Before(before))
				return &model.ComplianceSummary{UserID: p.ID, Total: 3, Acknowledged: 1, Pending: 2, Percentage: 33.33}, nil
			})

		req, _ := http.NewRequest("GET", "/policies/my-compliance", nil)
		w := serve(router, req)
		require.Equal(t, http.StatusOK, w.Code)
		var summary model.ComplianceSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, 33.33, summary.Percentage)
	})

	t.Run("report needs a manager of policies", func(t *testing.T) {
		router, api := setupRouter(&employeeUser)
		controller.NewComplianceController(mockCompliance).RegisterRoutes(api)

		req, _ := http.NewRequest("GET", "/policies/compliance-report", nil)
		w := serve(router, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("report", func(t *testing.T) {
		router, api := setupRouter(&hrUser)
		controller.NewComplianceController(mockCompliance).RegisterRoutes(api)

		mockCompliance.EXPECT().OrgReport(gomock.Any(), hrUser, gomock.Any()).
			Return([]model.UserCompliance{{UserID: "e1", Summary: &model.ComplianceSummary{UserID: "e1"}}}, nil)

		req, _ := http.NewRequest("GET", "/policies/compliance-report", nil)
		w := serve(router, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("report directory outage", func(t *testing.T) {
		router, api := setupRouter(&hrUser)
		controller.NewComplianceController(mockCompliance).RegisterRoutes(api)

		mockCompliance.EXPECT().OrgReport(gomock.Any(), hrUser, gomock.Any()).
			Return(nil, fmt.Errorf("failed to list users: connection refused"))

		req, _ := http.NewRequest("GET", "/policies/compliance-report", nil)
		w := serve(router, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to build compliance report", errorBody(t, w))
	})

	t.Run("acknowledgment stats", func(t *testing.T) {
		router, api := setupRouter(&hrUser)
		controller.NewComplianceController(mockCompliance).RegisterRoutes(api)

		mockCompliance.EXPECT().PolicyStats(gomock.Any(), hrUser, policyOne).
			Return(&model.PolicyAcknowledgmentStats{PolicyID: policyOne, Total: 4, Acknowledged: 1, Pending: 3, Percentage: 25}, nil)

		req, _ := http.NewRequest("GET", "/policies/"+policyOne+"/acknowledgment-stats", nil)
		w := serve(router, req)
		require.Equal(t, http.StatusOK, w.Code)
		var stats model.PolicyAcknowledgmentStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, int64(3), stats.Pending)
	})
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, api := setupRouter(&hrUser)
	controller.NewPolicyController(mock_service.NewMockIPolicyService(ctrl)).RegisterRoutes(api)
	controller.NewComplianceController(mock_service.NewMockIComplianceService(ctrl)).RegisterRoutes(api)
	controller.NewCategoryController(mock_service.NewMockICategoryService(ctrl)).RegisterRoutes(api)

	tests := []struct {
		method  string
		path    string
		message string
	}{
		{"POST", "/policies/abc/acknowledge", ems_errors.ErrPolicyNotFound.Error()},
		{"POST", "/policies/abc/publish", ems_errors.ErrPolicyNotFound.Error()},
		{"POST", "/policies/1/archive", ems_errors.ErrPolicyNotFound.Error()},
		{"POST", "/policies/abc/sync-acknowledgments", ems_errors.ErrPolicyNotFound.Error()},
		{"GET", "/policies/abc/acknowledgment-stats", ems_errors.ErrPolicyNotFound.Error()},
		{"GET", "/policies/abc", ems_errors.ErrPolicyNotFound.Error()},
		{"DELETE", "/policies/abc", ems_errors.ErrPolicyNotFound.Error()},
		{"GET", "/policies/abc/audit", ems_errors.ErrPolicyNotFound.Error()},
		{"GET", "/policies/abc/attachment", ems_errors.ErrPolicyNotFound.Error()},
		{"DELETE", "/categories/abc", ems_errors.ErrCategoryNotFound.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			// No service expectations: the request must stop at the handler.
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			w := serve(router, req)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, tt.message, errorBody(t, w))
		})
	}
}

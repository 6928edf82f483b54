package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dev-mohitbeniwal/ems/api/config"
	"github.com/dev-mohitbeniwal/ems/api/dao"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/pdp/engine"
	"github.com/dev-mohitbeniwal/ems/api/service"
	"github.com/dev-mohitbeniwal/ems/api/test/mock"
	"github.com/dev-mohitbeniwal/ems/api/test/testdb"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

var (
	admin    = model.Principal{ID: "a1", Name: "Ada", Email: "ada@example.com", Role: model.RoleAdmin}
	hr       = model.Principal{ID: "h1", Name: "Hal", Email: "hal@example.com", Role: model.RoleHR}
	manager  = model.Principal{ID: "m1", Name: "Mia", Email: "mia@example.com", Role: model.RoleManager}
	employee = model.Principal{ID: "e1", Name: "Eve", Email: "eve@example.com", Role: model.RoleEmployee}
	coworker = model.Principal{ID: "e2", Name: "Eli", Email: "eli@example.com", Role: model.RoleEmployee}
	intern   = model.Principal{ID: "i1", Name: "Ivy", Email: "ivy@example.com", Role: model.RoleIntern}
)

func directoryUsers() []model.Employee {
	users := []model.Employee{}
	for _, p := range []model.Principal{admin, hr, manager, employee, coworker, intern} {
		users = append(users, model.Employee{
			ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role,
			Department: "Ops", SlackID: "U-" + p.ID, Active: true,
		})
	}
	// A former intern who must never receive ledger rows.
	users = append(users, model.Employee{ID: "i2", Name: "Old", Role: model.RoleIntern, Active: false})
	return users
}

type harness struct {
	db        *gorm.DB
	redis     *miniredis.Miniredis
	directory *mock.FakeDirectory
	notifier  *mock.RecordingNotifier
	index     *mock.FakeIndex
	store     *mock.MemoryStore
	audit     *mock.RecordingAuditService
	bus       *util.EventBus
	ackDAO    *dao.AcknowledgmentDAO
	reminders *dao.ReminderDAO
	svc       *service.Services
	cfg       config.ComplianceConfiguration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		db:        testdb.New(t),
		redis:     testdb.NewRedis(t),
		directory: &mock.FakeDirectory{Users: directoryUsers()},
		notifier:  &mock.RecordingNotifier{},
		index:     mock.NewFakeIndex(),
		store:     mock.NewMemoryStore(),
		audit:     &mock.RecordingAuditService{},
		bus:       util.NewEventBus(),
		cfg: config.ComplianceConfiguration{
			FanOutBatchSize:   2,
			ReportConcurrency: 3,
			SummaryCacheTTL:   time.Minute,
			ReminderInterval:  24 * time.Hour,
			EscalateAfter:     2,
		},
	}

	svc, err := service.InitializeServices(service.Dependencies{
		DB:           h.db,
		Directory:    h.directory,
		Authorizer:   engine.NewPolicyEvaluator(engine.DefaultRules(), 64),
		AuditService: h.audit,
		Index:        h.index,
		Store:        h.store,
		Validation:   util.NewValidationUtil(),
		Cache:        util.NewCacheService(h.cfg.SummaryCacheTTL),
		Notifier:     h.notifier,
		EventBus:     h.bus,
		Compliance:   h.cfg,
	})
	require.NoError(t, err)
	h.svc = svc
	h.ackDAO = dao.NewAcknowledgmentDAO(h.db, nil)
	h.reminders = dao.NewReminderDAO(h.db)
	t.Cleanup(h.bus.Wait)
	return h
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

// draft creates a draft policy through the catalog service.
func (h *harness) draft(t *testing.T, title string, roles []string, mutate ...func(*model.PolicyInput)) *model.Policy {
	t.Helper()
	input := model.PolicyInput{
		Title:                      title,
		Content:                    title + " content",
		AppliesToRoles:             roles,
		AcknowledgmentDeadlineDays: intPtr(7),
	}
	for _, m := range mutate {
		m(&input)
	}
	p, err := h.svc.Policy.CreatePolicy(context.Background(), hr, input)
	require.NoError(t, err)
	return p
}

// published creates and publishes a policy.
func (h *harness) published(t *testing.T, title string, roles []string, mutate ...func(*model.PolicyInput)) *model.Policy {
	t.Helper()
	p := h.draft(t, title, roles, mutate...)
	published, err := h.svc.Compliance.Publish(context.Background(), hr, p.ID)
	require.NoError(t, err)
	return published
}

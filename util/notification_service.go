// util/notification_service.go

package util

import (
	"context"
	"fmt"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

// SlackPoster is the subset of *slack.Client used for delivery.
type SlackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// NotificationService delivers compliance notices over Slack. Without a Slack
// client every notice is only logged.
type NotificationService struct {
	slack        SlackPoster
	adminChannel string
}

type NotificationOption func(*NotificationService)

// WithSlackAPIURL points the Slack client at a different API root.
func WithSlackAPIURL(url string) func(*slackOptions) {
	return func(o *slackOptions) { o.apiURL = url }
}

type slackOptions struct {
	apiURL string
}

// NewSlackClient builds a Slack client. The token is mandatory.
func NewSlackClient(token string, opts ...func(*slackOptions)) (*slack.Client, error) {
	if token == "" {
		return nil, fmt.Errorf("slack token is required")
	}
	var o slackOptions
	for _, opt := range opts {
		opt(&o)
	}
	var clientOpts []slack.Option
	if o.apiURL != "" {
		clientOpts = append(clientOpts, slack.OptionAPIURL(o.apiURL))
	}
	return slack.New(token, clientOpts...), nil
}

// WithSlack enables Slack delivery. adminChannel receives escalations.
func WithSlack(poster SlackPoster, adminChannel string) NotificationOption {
	return func(n *NotificationService) {
		n.slack = poster
		n.adminChannel = adminChannel
	}
}

func NewNotificationService(opts ...NotificationOption) *NotificationService {
	n := &NotificationService{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *NotificationService) NotifyPolicyPublished(ctx context.Context, policy model.Policy, recipients int) error {
	logger.Info("NOTIFICATION: Policy published",
		zap.String("policyID", policy.ID),
		zap.String("title", policy.Title),
		zap.Int("recipients", recipients))

	if n.slack == nil || n.adminChannel == "" {
		return nil
	}

	text := fmt.Sprintf("Policy *%s* v%s was published to %d employees.", policy.Title, policy.Version, recipients)
	return n.post(ctx, n.adminChannel, text,
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
		contextLine(fmt.Sprintf("Priority: %s | Deadline: %d days", policy.Priority, policy.AcknowledgmentDeadlineDays)),
	)
}

// SendReminder sends a direct message about an overdue acknowledgment.
func (n *NotificationService) SendReminder(ctx context.Context, employee model.Employee, policy model.Policy, count int) error {
	logger.Info("NOTIFICATION: Acknowledgment reminder",
		zap.String("userID", employee.ID),
		zap.String("policyID", policy.ID),
		zap.Int("reminderCount", count))

	if n.slack == nil {
		return nil
	}
	if employee.SlackID == "" {
		logger.Debug("Employee has no Slack ID, reminder only logged", zap.String("userID", employee.ID))
		return nil
	}

	text := fmt.Sprintf("Reminder: please acknowledge the policy *%s*.", policy.Title)
	detail := "Acknowledgment is overdue."
	if deadline, ok := policy.Deadline(); ok {
		detail = fmt.Sprintf("Acknowledgment was due %s.", deadline.UTC().Format(time.DateOnly))
	}
	return n.post(ctx, employee.SlackID, text,
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
		contextLine(fmt.Sprintf("%s Reminder #%d", detail, count)),
	)
}

// Escalate tells the admin channel that a user keeps ignoring reminders.
func (n *NotificationService) Escalate(ctx context.Context, employee model.Employee, policy model.Policy, count int) error {
	logger.Warn("NOTIFICATION: Acknowledgment escalated",
		zap.String("userID", employee.ID),
		zap.String("policyID", policy.ID),
		zap.Int("reminderCount", count))

	if n.slack == nil || n.adminChannel == "" {
		return nil
	}

	text := fmt.Sprintf("%s (%s) has not acknowledged *%s* after %d reminders.",
		employee.Name, employee.Email, policy.Title, count)
	return n.post(ctx, n.adminChannel, text,
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
		contextLine("Department: "+employee.Department),
	)
}

func (n *NotificationService) post(ctx context.Context, channel, fallback string, blocks ...slack.Block) error {
	_, ts, err := n.slack.PostMessageContext(ctx, channel,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		logger.Error("Failed to post Slack message", zap.String("channel", channel), zap.Error(err))
		return fmt.Errorf("failed to post slack message: %w", err)
	}
	logger.Debug("Slack message posted", zap.String("channel", channel), zap.String("ts", ts))
	return nil
}

func contextLine(text string) slack.Block {
	return slack.NewContextBlock("", slack.NewTextBlockObject(slack.MarkdownType, text, false, false))
}

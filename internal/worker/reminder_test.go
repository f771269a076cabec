package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coparent/internal/model"
	"coparent/internal/notify"
	notifyMocks "coparent/internal/notify/mocks"
	repoMocks "coparent/internal/repository/mocks"
)

var testNow = time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

type dispatcherMocks struct {
	reminders *repoMocks.MockReminderRepository
	emails    *repoMocks.MockNotificationEmailRepository
	users     *repoMocks.MockUserRepository
	mailer    *notifyMocks.MockMailer
	messenger *notifyMocks.MockMessenger
}

func newDispatcher(t *testing.T) (*ReminderDispatcher, dispatcherMocks) {
	t.Helper()
	m := dispatcherMocks{
		reminders: new(repoMocks.MockReminderRepository),
		emails:    new(repoMocks.MockNotificationEmailRepository),
		users:     new(repoMocks.MockUserRepository),
		mailer:    new(notifyMocks.MockMailer),
		messenger: new(notifyMocks.MockMessenger),
	}
	d, err := NewReminderDispatcher(m.reminders, m.emails, m.users, m.mailer, m.messenger,
		time.Minute, func() time.Time { return testNow }, prometheus.NewRegistry())
	require.NoError(t, err)
	return d, m
}

func (m dispatcherMocks) assertExpectations(t *testing.T) {
	m.reminders.AssertExpectations(t)
	m.emails.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
	m.messenger.AssertExpectations(t)
}

func TestDue(t *testing.T) {
	at := func(h int) *model.TimeOfDay { return &model.TimeOfDay{Hour: h} }

	tests := []struct {
		name string
		r    model.Reminder
		want bool
	}{
		{"yesterday", model.Reminder{Date: model.NewDate(2024, time.March, 13), NotificationTime: at(23)}, true},
		{"today without time", model.Reminder{Date: model.NewDate(2024, time.March, 14)}, true},
		{"today time passed", model.Reminder{Date: model.NewDate(2024, time.March, 14), NotificationTime: at(9)}, true},
		{"today at this minute", model.Reminder{Date: model.NewDate(2024, time.March, 14), NotificationTime: at(10)}, true},
		{"today later", model.Reminder{Date: model.NewDate(2024, time.March, 14), NotificationTime: at(18)}, false},
		{"tomorrow", model.Reminder{Date: model.NewDate(2024, time.March, 15)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, due(tt.r, testNow))
		})
	}
}

func TestReminderDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()
	today := model.NewDate(2024, time.March, 14)
	phone := "+15551234567"

	t.Run("sends due reminders and marks them", func(t *testing.T) {
		d, m := newDispatcher(t)

		m.reminders.On("ListPending", ctx, today).Return([]model.Reminder{
			{ID: 1, FamilyID: "fam-1", Date: today, Text: "Pack <gym> bag"},
			{ID: 2, FamilyID: "fam-1", Date: today, Text: "Pickup", NotificationTime: &model.TimeOfDay{Hour: 18}},
		}, nil)
		m.emails.On("List", ctx, "fam-1").Return([]model.NotificationEmail{{Email: "grandma@example.com"}}, nil)
		m.users.On("ListByFamily", ctx, "fam-1").Return([]model.User{{ID: "a", PhoneNumber: &phone}, {ID: "b"}}, nil)
		m.mailer.On("Send", ctx, mock.MatchedBy(func(e notify.Email) bool {
			return e.Subject == "Reminder for Thursday, March 14" &&
				len(e.To) == 1 && e.To[0] == "grandma@example.com" &&
				strings.Contains(e.HTML, "Pack &lt;gym&gt; bag")
		})).Return(nil).Once()
		m.messenger.On("SendSMS", ctx, phone, "Reminder for Thursday, March 14: Pack <gym> bag").Return(nil).Once()
		m.reminders.On("MarkNotified", ctx, int64(1), testNow).Return(nil).Once()

		n, err := d.Dispatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1.0, testutil.ToFloat64(d.sent.WithLabelValues("sent")))
		m.assertExpectations(t)
	})

	t.Run("failed delivery is retried later", func(t *testing.T) {
		d, m := newDispatcher(t)

		m.reminders.On("ListPending", ctx, today).Return([]model.Reminder{
			{ID: 3, FamilyID: "fam-2", Date: today.AddDays(-1), Text: "Forms"},
		}, nil)
		m.emails.On("List", ctx, "fam-2").Return([]model.NotificationEmail{{Email: "x@example.com"}}, nil)
		m.users.On("ListByFamily", ctx, "fam-2").Return([]model.User{}, nil)
		m.mailer.On("Send", ctx, mock.Anything).Return(errors.New("421 try again"))

		n, err := d.Dispatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, 1.0, testutil.ToFloat64(d.sent.WithLabelValues("failed")))
		m.reminders.AssertNotCalled(t, "MarkNotified", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("one delivered channel marks notified", func(t *testing.T) {
		d, m := newDispatcher(t)

		m.reminders.On("ListPending", ctx, today).Return([]model.Reminder{
			{ID: 5, FamilyID: "fam-4", Date: today, Text: "Dentist"},
		}, nil).Once()
		m.reminders.On("ListPending", ctx, today).Return([]model.Reminder{}, nil)
		m.emails.On("List", ctx, "fam-4").Return([]model.NotificationEmail{{Email: "x@example.com"}}, nil)
		m.users.On("ListByFamily", ctx, "fam-4").Return([]model.User{{PhoneNumber: &phone}}, nil)
		m.mailer.On("Send", ctx, mock.Anything).Return(nil)
		m.messenger.On("SendSMS", ctx, phone, mock.Anything).Return(errors.New("invalid phone number"))
		m.reminders.On("MarkNotified", ctx, int64(5), testNow).Return(nil).Once()

		for range 3 {
			_, err := d.Dispatch(ctx)
			require.NoError(t, err)
		}

		m.mailer.AssertNumberOfCalls(t, "Send", 1)
		m.messenger.AssertNumberOfCalls(t, "SendSMS", 1)
		assert.Equal(t, 1.0, testutil.ToFloat64(d.sent.WithLabelValues("sent")))
		m.assertExpectations(t)
	})

	t.Run("gives up after repeated failures", func(t *testing.T) {
		d, m := newDispatcher(t)

		m.reminders.On("ListPending", ctx, today).Return([]model.Reminder{
			{ID: 6, FamilyID: "fam-5", Date: today, Text: "Recital"},
		}, nil).Times(maxDeliveryAttempts)
		m.emails.On("List", ctx, "fam-5").Return([]model.NotificationEmail{{Email: "x@example.com"}}, nil)
		m.users.On("ListByFamily", ctx, "fam-5").Return([]model.User{}, nil)
		m.mailer.On("Send", ctx, mock.Anything).Return(errors.New("mailbox unavailable"))
		m.reminders.On("MarkNotified", ctx, int64(6), testNow).Return(nil).Once()

		for i := 1; i <= maxDeliveryAttempts; i++ {
			n, err := d.Dispatch(ctx)
			require.NoError(t, err)
			if i < maxDeliveryAttempts {
				assert.Equal(t, 0, n)
			} else {
				assert.Equal(t, 1, n)
			}
		}

		assert.Equal(t, float64(maxDeliveryAttempts-1), testutil.ToFloat64(d.sent.WithLabelValues("failed")))
		assert.Equal(t, 1.0, testutil.ToFloat64(d.sent.WithLabelValues("abandoned")))
		assert.Empty(t, d.attempts)
		m.assertExpectations(t)
	})

	t.Run("disabled channels still mark notified", func(t *testing.T) {
		d, m := newDispatcher(t)

		m.reminders.On("ListPending", ctx, today).Return([]model.Reminder{
			{ID: 4, FamilyID: "fam-3", Date: today, Text: "Swim"},
		}, nil)
		m.emails.On("List", ctx, "fam-3").Return([]model.NotificationEmail{{Email: "x@example.com"}}, nil)
		m.users.On("ListByFamily", ctx, "fam-3").Return([]model.User{{PhoneNumber: &phone}}, nil)
		m.mailer.On("Send", ctx, mock.Anything).Return(notify.ErrDisabled)
		m.messenger.On("SendSMS", ctx, phone, mock.Anything).Return(notify.ErrDisabled)
		m.reminders.On("MarkNotified", ctx, int64(4), testNow).Return(nil)

		n, err := d.Dispatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		m.assertExpectations(t)
	})

	t.Run("list failure", func(t *testing.T) {
		d, m := newDispatcher(t)
		m.reminders.On("ListPending", ctx, today).Return(nil, errors.New("db down"))

		_, err := d.Dispatch(ctx)
		assert.ErrorContains(t, err, "list pending reminders: db down")
	})
}

func TestReminderDispatcher_RunStopsOnCancel(t *testing.T) {
	d, m := newDispatcher(t)
	m.reminders.On("ListPending", mock.Anything, mock.Anything).Return([]model.Reminder{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

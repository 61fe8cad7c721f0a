package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobande/taskrr/internal/models"
)

func seedStore(t *testing.T, count int) (*Store, []string) {
	t.Helper()
	s := NewStore()
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		n := s.Add(models.NotificationPayload{
			Title: fmt.Sprintf("notification %d", i),
			Data:  map[string]any{"orderId": fmt.Sprintf("order-%d", i)},
		})
		ids[i] = n.ID
	}
	return s, ids
}

func TestStoreAddNewestFirst(t *testing.T) {
	s, ids := seedStore(t, 3)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[0], list[2].ID)
	assert.Equal(t, 3, s.UnreadCount())
}

func TestStoreMarkAllRead(t *testing.T) {
	s, _ := seedStore(t, 4)

	s.MarkAllRead()

	for _, n := range s.List() {
		assert.True(t, n.Read)
	}
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStoreMarkOneRead(t *testing.T) {
	s, ids := seedStore(t, 2)

	assert.True(t, s.MarkRead(ids[0]))
	assert.False(t, s.MarkRead("missing"))
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStoreDeleteKeepsOrder(t *testing.T) {
	s, ids := seedStore(t, 4)

	assert.True(t, s.Delete(ids[1]))

	list := s.List()
	require.Len(t, list, 3)
	// Newest first, with exactly ids[1] gone.
	assert.Equal(t, []string{ids[3], ids[2], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})

	assert.False(t, s.Delete(ids[1]))
}

func TestStoreClear(t *testing.T) {
	s, _ := seedStore(t, 3)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStoreAddTest(t *testing.T) {
	s := NewStore()
	n := s.AddTest()
	require.NotNil(t, n)
	assert.NotEmpty(t, n.ID)
	assert.Contains(t, []models.NotificationType{
		models.NotificationTypeOrder,
		models.NotificationTypeMessage,
		models.NotificationTypePayment,
		models.NotificationTypeReview,
		models.NotificationTypeSystem,
	}, n.Type)
	assert.Equal(t, 1, s.Len())
}

func TestStoreAddKeepsPayloadID(t *testing.T) {
	s := NewStore()
	n := s.Add(models.NotificationPayload{ID: "push-1", Title: "hi"})
	assert.Equal(t, "push-1", n.ID)

	generated := s.Add(models.NotificationPayload{Title: "no id"})
	assert.NotEmpty(t, generated.ID)
}

package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memContactRepo struct {
	messages []Message
}

func (m *memContactRepo) Create(ctx context.Context, msg Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memContactRepo) List(ctx context.Context, limit, offset int) ([]Message, error) {
	return m.messages, nil
}

func TestSubmit(t *testing.T) {
	repo := &memContactRepo{}
	svc := NewService(repo)

	m, err := svc.Submit(t.Context(), "  Dave  ", " DAVE@Example.com ", "  Do you deliver to Karachi?  ")
	require.NoError(t, err)
	assert.Equal(t, "Dave", m.Name)
	assert.Equal(t, "dave@example.com", m.Email)
	assert.Equal(t, "Do you deliver to Karachi?", m.Body)
	assert.Len(t, repo.messages, 1)
}

func TestSubmitRejections(t *testing.T) {
	svc := NewService(&memContactRepo{})
	var ve ErrValidation

	tests := []struct {
		name, email, body string
	}{
		{"", "dave@example.com", "hello"},
		{"Dave", "", "hello"},
		{"Dave", "dave@example.com", "   "},
		{"Dave", "not-an-email", "hello"},
	}
	for _, tc := range tests {
		_, err := svc.Submit(t.Context(), tc.name, tc.email, tc.body)
		assert.ErrorAs(t, err, &ve)
	}
}

package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/internal/source"
)

func TestDecodeParagraphs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "empty", input: "", want: 0},
		{name: "null", input: "null", want: 0},
		{name: "two", input: `[{"start":0,"end":1,"text":"a"},{"start":1,"end":2,"text":"b"}]`, want: 2},
		{name: "object", input: `{"text":"a"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeParagraphs([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestMentionRow_ToMention(t *testing.T) {
	id := "c-1"
	r := mentionRow{
		Start:      sql.NullFloat64{Float64: 4.5, Valid: true},
		EntityType: "crypto",
		EntityID:   &id,
		Details:    []byte(`{"name":"Bitcoin","sentiment":{"score":"0.7"}}`),
	}

	m := r.toMention()
	assert.Equal(t, transcript.Seconds(4.5), m.Start)
	assert.Equal(t, transcript.Seconds(0), m.End, "null end decodes as 0")
	assert.Equal(t, transcript.EntityCryptocurrency, m.EntityType)
	assert.Equal(t, "Bitcoin", m.Key())
	assert.Equal(t, transcript.Positive, m.Details.Sentiment.Sign())
}

func TestMentionRow_BadDetails(t *testing.T) {
	m := mentionRow{EntityType: "company", Details: []byte(`not json`)}.toMention()
	assert.Empty(t, m.Key())
}

func TestOpen_RequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	require.Error(t, err)
}

// TestClient_Live runs against a real database when HARK_TEST_DSN is set.
func TestClient_Live(t *testing.T) {
	dsn := os.Getenv("HARK_TEST_DSN")
	if dsn == "" {
		t.Skip("HARK_TEST_DSN not set")
	}

	ctx := context.Background()
	client, err := Open(ctx, Config{DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck

	_, err = client.LoadPost(ctx, "no-such-channel", "no-such-post")
	require.ErrorIs(t, err, source.ErrNotFound)
}

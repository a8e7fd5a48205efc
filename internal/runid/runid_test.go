package runid

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	id := Generate()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	t.Parallel()

	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	mockClock := quartz.NewMock(t)
	random := bytes.Repeat([]byte{0xab}, 20)
	a := NewGenerator(mockClock, bytes.NewReader(random)).Generate()
	b := NewGenerator(mockClock, bytes.NewReader(random)).Generate()

	assert.Equal(t, a, b)
	assert.NoError(t, Validate(a))
}

func TestGenerateSortsByTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockClock := quartz.NewMock(t)

	// Later IDs get smaller random bytes so only the timestamp can order them.
	var ids []string
	for i := 0; i < 10; i++ {
		random := bytes.Repeat([]byte{byte(0xff - i)}, 10)
		ids = append(ids, NewGenerator(mockClock, bytes.NewReader(random)).Generate())
		mockClock.Advance(time.Millisecond).MustWait(ctx)
	}

	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestGenerateShortRandomPanics(t *testing.T) {
	t.Parallel()

	g := NewGenerator(quartz.NewMock(t), bytes.NewReader([]byte{1, 2, 3}))
	assert.Panics(t, func() { g.Generate() })
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := NewGenerator(quartz.NewMock(t), bytes.NewReader(make([]byte, 10))).Generate()

	tests := []struct {
		name    string
		id      string
		wantErr string
	}{
		{"generated", valid, ""},
		{"empty", "", "exactly 26 characters"},
		{"too long", valid + "0", "exactly 26 characters"},
		{"uppercase", "0" + "ABCDEFGHJKMNPQRSTVWXYZ012", "invalid character"},
		{"excluded letter", "01234567890123456789012ilo", "invalid character"},
		{"wrong version", "00000000000000000000000000", "version 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

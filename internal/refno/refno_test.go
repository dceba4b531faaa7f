package refno

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// memStore mimics the range query: sorted descending, limit 1.
type memStore struct {
	refs []string
	err  error
}

func (m *memStore) LatestReferenceInRange(_ context.Context, lower, upper string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	var in []string
	for _, r := range m.refs {
		if r >= lower && r <= upper {
			in = append(in, r)
		}
	}
	if len(in) == 0 {
		return "", false, nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(in)))
	return in[0], true, nil
}

func fixedClock(s string) func() time.Time {
	t, _ := time.Parse("2006-01-02 15:04", s)
	return func() time.Time { return t }
}

func TestIssue_SequentialWithinDay(t *testing.T) {
	store := &memStore{refs: []string{"20240114000007"}}
	iss := NewIssuer(store, time.UTC).WithClock(fixedClock("2024-01-15 09:30"))

	want := []string{"20240115000001", "20240115000002", "20240115000003", "20240115000004"}
	for _, w := range want {
		got := iss.Issue(context.Background())
		assert.Equal(t, w, got)
		store.refs = append(store.refs, got)
	}
}

func TestIssue_ContinuesFromHighest(t *testing.T) {
	store := &memStore{refs: []string{"20240115000009", "20240115000123", "20240116000001"}}
	iss := NewIssuer(store, time.UTC).WithClock(fixedClock("2024-01-15 23:59"))

	assert.Equal(t, "20240115000124", iss.Issue(context.Background()))
}

func TestIssue_UsesConfiguredZone(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	iss := NewIssuer(&memStore{}, wib).WithClock(fixedClock("2024-01-15 20:00"))

	assert.Equal(t, "20240116000001", iss.Issue(context.Background()))
}

func TestIssue_DegradesOnLookupFailure(t *testing.T) {
	store := &memStore{refs: []string{"20240115000050"}, err: errors.New("connection reset")}
	iss := NewIssuer(store, time.UTC).WithClock(fixedClock("2024-01-15 10:00"))

	assert.Equal(t, "20240115000001", iss.Issue(context.Background()))
}

func TestIssue_DegradesOnExhaustedSequence(t *testing.T) {
	store := &memStore{refs: []string{"20240115999999"}}
	iss := NewIssuer(store, time.UTC).WithClock(fixedClock("2024-01-15 10:00"))

	assert.Equal(t, "20240115000001", iss.Issue(context.Background()))
}

func TestIssue_DegradesOnMalformedLatest(t *testing.T) {
	for _, latest := range []string{"2024011500012x", "202401150001"} {
		store := &memStore{refs: []string{latest}}
		iss := NewIssuer(store, time.UTC).WithClock(fixedClock("2024-01-15 10:00"))

		assert.Equal(t, "20240115000001", iss.Issue(context.Background()), latest)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"20240115000123", true},
		{"20240229000001", true},
		{"2024011500012", false},
		{"202401150001234", false},
		{"20241315000001", false},
		{"20230229000001", false},
		{"20240132000001", false},
		{"abcd0115000001", false},
		{"2024011500012x", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.ref), tt.ref)
	}
}

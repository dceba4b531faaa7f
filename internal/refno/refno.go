// Package refno issues day-scoped payment reference numbers of the form
// YYYYMMDD followed by a six digit daily sequence.
package refno

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"go-furniture-erp/pkg/logger"
)

const (
	prefixLen = 8
	seqLen    = 6
	Length    = prefixLen + seqLen
	maxSeq    = 999999
)

// Store returns the highest reference number within [lower, upper], if any.
type Store interface {
	LatestReferenceInRange(ctx context.Context, lower, upper string) (string, bool, error)
}

type Issuer struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewIssuer(store Store, loc *time.Location) *Issuer {
	if loc == nil {
		loc = time.Local
	}
	return &Issuer{store: store, loc: loc, now: time.Now}
}

// WithClock replaces the wall clock, used by tests and backfills.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue returns the next number for today. Two concurrent callers can read the
// same latest number and return duplicates. When the lookup fails the issuer
// still answers with sequence 000001, which may collide with an existing number.
func (i *Issuer) Issue(ctx context.Context) string {
	prefix := Prefix(i.now(), i.loc)
	fallback := prefix + fmt.Sprintf("%0*d", seqLen, 1)

	latest, found, err := i.store.LatestReferenceInRange(ctx, prefix+"000000", prefix+"999999")
	if err != nil {
		logger.Get().WithFields(logrus.Fields{"prefix": prefix, "error": err.Error()}).
			Warn("reference number lookup failed, issuing degraded default")
		return fallback
	}
	if !found {
		return fallback
	}

	seq := -1
	if Valid(latest) {
		seq, _ = strconv.Atoi(latest[prefixLen:])
	}
	if seq < 0 || seq >= maxSeq {
		logger.Get().WithFields(logrus.Fields{"prefix": prefix, "latest": latest}).
			Error("cannot continue daily sequence, issuing degraded default")
		return fallback
	}
	return prefix + fmt.Sprintf("%0*d", seqLen, seq+1)
}

// Prefix is the calendar date of t in loc as YYYYMMDD.
func Prefix(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("20060102")
}

// Valid reports whether ref is 14 ASCII digits starting with a real calendar date.
func Valid(ref string) bool {
	if len(ref) != Length {
		return false
	}
	for i := 0; i < len(ref); i++ {
		if ref[i] < '0' || ref[i] > '9' {
			return false
		}
	}
	_, err := time.Parse("20060102", ref[:prefixLen])
	return err == nil
}

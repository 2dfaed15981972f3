package reportstore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randcert-go/pkg/congruential"
	"randcert-go/pkg/randtest"
	"randcert-go/pkg/transform"
)

func openStore(t *testing.T, codec *transform.Pipeline) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "reports.db"), codec)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(count int) *Report {
	return &Report{
		Config: congruential.NewConfig(count),
		Count:  count,
		Width:  5,
		Verdicts: randtest.Verdicts{
			Monobit: true, ChiSquared: true, Poker: true, Runs: false,
		},
		Outcomes: []randtest.Outcome{
			{Test: "runs", Pass: false, Statistic: 0.004, Threshold: 0.01},
		},
	}
}

func TestPutGet(t *testing.T) {
	s := openStore(t, nil)
	r := sampleReport(50)
	require.NoError(t, s.Put(r))
	require.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, Fingerprint(r.Config), r.Fingerprint)

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(r, got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestGetUnknown(t *testing.T) {
	s := openStore(t, nil)
	_, err := s.Get(uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLookup(t *testing.T) {
	s := openStore(t, nil)
	first := sampleReport(50)
	require.NoError(t, s.Put(first))
	second := sampleReport(50)
	second.Verdicts.Runs = true
	require.NoError(t, s.Put(second))

	got, err := s.Lookup(congruential.NewConfig(50))
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID, "lookup returns the latest report")

	_, err = s.Lookup(congruential.NewConfig(51))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListNewestFirst(t *testing.T) {
	s := openStore(t, nil)
	var ids []uuid.UUID
	for _, n := range []int{10, 20, 30, 40} {
		r := sampleReport(n)
		require.NoError(t, s.Put(r))
		ids = append(ids, r.ID)
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, r := range all {
		assert.Equal(t, ids[len(ids)-1-i], r.ID)
	}

	two, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, 40, two[0].Count)
	assert.Equal(t, 30, two[1].Count)
}

func TestSealedStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports.db")
	codec, err := transform.ForStore(transform.StoreOptions{Compression: transform.CompressionGzip, Passphrase: "s3cret"})
	require.NoError(t, err)

	s, err := Open(path, codec)
	require.NoError(t, err)
	r := sampleReport(100)
	require.NoError(t, s.Put(r))
	require.NoError(t, s.Close())

	wrong, err := transform.ForStore(transform.StoreOptions{Compression: transform.CompressionGzip, Passphrase: "other"})
	require.NoError(t, err)
	s, err = Open(path, wrong)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get(r.ID)
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := congruential.NewConfig(1000)
	b := a
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	seen := map[uint64]congruential.Config{Fingerprint(a): a}
	for _, mutate := range []func(*congruential.Config){
		func(c *congruential.Config) { c.Count++ },
		func(c *congruential.Config) { c.Multiplier++ },
		func(c *congruential.Config) { c.Increment++ },
		func(c *congruential.Config) { c.PoolSize++ },
		func(c *congruential.Config) { c.Modulus++ },
		func(c *congruential.Config) { c.InitialSeed++ },
	} {
		c := a
		mutate(&c)
		fp := Fingerprint(c)
		if prev, dup := seen[fp]; dup {
			t.Errorf("%+v and %+v share fingerprint %x", prev, c, fp)
		}
		seen[fp] = c
	}
}

func TestShuffledTableIsPermutation(t *testing.T) {
	var seen [256]bool
	for _, v := range table {
		if seen[v] {
			t.Fatalf("value %d appears twice", v)
		}
		seen[v] = true
	}
	identity := true
	for i, v := range table {
		if int(v) != i {
			identity = false
			break
		}
	}
	assert.False(t, identity)
}

package datasets

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiweivv2222/pykeen/core/triples"
)

func smallDataset(name string) *triples.Dataset {
	ts := triples.TripleSet{
		{Head: 0, Relation: 0, Tail: 1},
		{Head: 1, Relation: 1, Tail: 2},
		{Head: 2, Relation: 0, Tail: 0},
	}
	f := &triples.Factory{NumEntities: 3, NumRelations: 2, Triples: ts}
	return &triples.Dataset{Name: name, Training: f, Validation: f, Testing: f}
}

func TestRegistry_SyntheticDatasetsRegistered(t *testing.T) {
	names := Names()
	for _, want := range []string{"chains", "clusters", "hubs"} {
		assert.Contains(t, names, want)
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("no-such-dataset")
	require.ErrorIs(t, err, ErrUnknownDataset)
}

func TestGet_LoaderError(t *testing.T) {
	Register("registry-broken", func() (*triples.Dataset, error) {
		return nil, errors.New("missing archive")
	})
	_, err := Get("registry-broken")
	require.ErrorIs(t, err, ErrDatasetLoad)
	assert.Contains(t, err.Error(), "registry-broken")
	assert.Contains(t, err.Error(), "missing archive")
}

func TestGet_CachesLoadedDataset(t *testing.T) {
	var calls atomic.Int32
	Register("registry-cached", func() (*triples.Dataset, error) {
		calls.Add(1)
		return smallDataset("registry-cached"), nil
	})

	first, err := Get("registry-cached")
	require.NoError(t, err)

	// The cache admits entries asynchronously, so repeated loads may call
	// the loader more than once before the entry settles. Whichever path a
	// load takes, the dataset it returns must be the same graph.
	for n := 0; n < 5; n++ {
		again, err := Get("registry-cached")
		require.NoError(t, err)
		assert.Equal(t, first.Summary(), again.Summary())
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestMatch_Glob(t *testing.T) {
	Register("match-alpha", func() (*triples.Dataset, error) { return smallDataset("match-alpha"), nil })
	Register("match-beta", func() (*triples.Dataset, error) { return smallDataset("match-beta"), nil })

	names, err := Match("match-*")
	require.NoError(t, err)
	assert.Equal(t, []string{"match-alpha", "match-beta"}, names)

	none, err := Match("zzz-*")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = Match("[")
	assert.Error(t, err, "malformed pattern must be reported")
}

func TestReadTSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "train.tsv")
	content := "# comment line\nanna\tknows\tbob\n\nbob\tlikes\tcarol\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	labeled, err := ReadTSV(path)
	require.NoError(t, err)
	require.Len(t, labeled, 2)
	assert.Equal(t, triples.LabeledTriple{Head: "anna", Relation: "knows", Tail: "bob"}, labeled[0])
	assert.Equal(t, triples.LabeledTriple{Head: "bob", Relation: "likes", Tail: "carol"}, labeled[1])
}

func TestReadTSV_BadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.tsv")
	require.NoError(t, os.WriteFile(path, []byte("anna knows bob\n"), 0o644))

	_, err := ReadTSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.tsv:1")
}

func TestRegisterTSV_SharedVocabulary(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	train := write("train.tsv", "anna\tknows\tbob\nbob\tknows\tcarol\n")
	valid := write("valid.tsv", "carol\tknows\tanna\n")
	test := write("test.tsv", "anna\tlikes\tcarol\n")

	RegisterTSV("registry-tsv", train, valid, test)
	d, err := Get("registry-tsv")
	require.NoError(t, err)

	assert.Equal(t, 3, d.NumEntities())
	assert.Equal(t, 2, d.NumRelations(), "relation vocabulary spans all splits")
	assert.Equal(t, 2, d.Training.NumTriples())
	assert.Equal(t, 1, d.Validation.NumTriples())
	assert.Equal(t, 1, d.Testing.NumTriples())

	// Ids are shared: "anna" encodes identically in training and testing.
	assert.Equal(t, d.Training.Triples[0].Head, d.Testing.Triples[0].Head)
}

func TestSyntheticGenerators_Deterministic(t *testing.T) {
	for _, name := range []string{"chains", "clusters", "hubs"} {
		a, err := Get(name)
		require.NoError(t, err, name)
		b, err := Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, a.Summary(), b.Summary(), name)
		assert.Equal(t, a.Training.Triples, b.Training.Triples, name)
	}
}

package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"env-inspector/internal/model"
)

const kindFake model.ProbeKind = "fake"

// fakeChecker reports the libraries in installed as available, returns
// faults[name] for names listed there and ErrNotFound for everything else.
type fakeChecker struct {
	installed map[string]bool
	faults    map[string]error
	calls     []string
}

func (f *fakeChecker) Check(_ context.Context, def *model.LibraryDefinition) error {
	f.calls = append(f.calls, def.Name)
	if err, ok := f.faults[def.Name]; ok {
		return err
	}
	if f.installed[def.Name] {
		return nil
	}
	return notFound(kindFake, def.ResolvedTarget())
}

func newFakeProber(checker Checker) *Prober {
	r := NewRegistry()
	r.Register(kindFake, checker)
	return NewProber(r, zerolog.Nop())
}

func fakeDefs(names ...string) []*model.LibraryDefinition {
	defs := make([]*model.LibraryDefinition, 0, len(names))
	for _, n := range names {
		defs = append(defs, &model.LibraryDefinition{Name: n, Kind: kindFake})
	}
	return defs
}

// =============================================================================
// Scan Tests
// =============================================================================

func TestProber_Scan_OneResultPerNameInOrder(t *testing.T) {
	checker := &fakeChecker{installed: map[string]bool{"pandas": true, "torch": true}}
	prober := newFakeProber(checker)

	scan, err := prober.Scan(context.Background(), "libs", fakeDefs("pandas", "numpy", "torch", "seaborn"))

	require.NoError(t, err)
	require.Len(t, scan.Results, 4)
	assert.Equal(t, "libs", scan.Title)
	assert.False(t, scan.Faulted())
	assert.Empty(t, scan.Skipped)

	names := make([]string, 0, 4)
	for _, r := range scan.Results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"pandas", "numpy", "torch", "seaborn"}, names)
	assert.True(t, scan.Results[0].Installed)
	assert.False(t, scan.Results[1].Installed)
	assert.True(t, scan.Results[2].Installed)
	assert.False(t, scan.Results[3].Installed)
}

func TestProber_Scan_NotFoundContinues(t *testing.T) {
	checker := &fakeChecker{installed: map[string]bool{"pandas": true}}
	prober := newFakeProber(checker)

	scan, err := prober.Scan(context.Background(), "", fakeDefs("not_a_real_package_xyz", "pandas"))

	require.NoError(t, err)
	require.Len(t, scan.Results, 2)
	assert.Equal(t, "not installed", scan.Results[0].StatusText())
	assert.Equal(t, "installed", scan.Results[1].StatusText())
	assert.Equal(t, []string{"not_a_real_package_xyz", "pandas"}, checker.calls)
}

func TestProber_Scan_DuplicatesAreHarmless(t *testing.T) {
	checker := &fakeChecker{installed: map[string]bool{"numpy": true}}
	prober := newFakeProber(checker)

	scan, err := prober.Scan(context.Background(), "", fakeDefs("numpy", "numpy"))

	require.NoError(t, err)
	assert.Len(t, scan.Results, 2)
	assert.Equal(t, 2, scan.InstalledCount())
}

func TestProber_Scan_FaultAbortsRemainder(t *testing.T) {
	cause := errors.New("interpreter crashed")
	checker := &fakeChecker{
		installed: map[string]bool{"a": true},
		faults:    map[string]error{"b": cause},
	}
	prober := newFakeProber(checker)

	scan, err := prober.Scan(context.Background(), "", fakeDefs("a", "b", "c", "d"))

	require.Error(t, err)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "b", fault.Library)
	assert.ErrorIs(t, err, cause)

	require.Len(t, scan.Results, 1)
	assert.Equal(t, "a", scan.Results[0].Name)
	assert.True(t, scan.Faulted())
	assert.Contains(t, scan.Fault, "interpreter crashed")
	assert.Equal(t, []string{"c", "d"}, scan.Skipped)
	assert.Equal(t, []string{"a", "b"}, checker.calls, "no checks after the fault")
}

func TestProber_Scan_UnknownKindIsFault(t *testing.T) {
	prober := NewProber(NewRegistry(), zerolog.Nop())
	defs := []*model.LibraryDefinition{{Name: "x", Kind: "carrier-pigeon"}}

	scan, err := prober.Scan(context.Background(), "", defs)

	require.Error(t, err)
	assert.Empty(t, scan.Results)
	assert.Contains(t, scan.Fault, "carrier-pigeon")
}

func TestProber_Scan_PanicIsFault(t *testing.T) {
	checker := CheckerFunc(func(context.Context, *model.LibraryDefinition) error {
		panic("kaboom")
	})
	prober := newFakeProber(checker)

	scan, err := prober.Scan(context.Background(), "", fakeDefs("a", "b"))

	require.Error(t, err)
	assert.Contains(t, scan.Fault, "kaboom")
	assert.Equal(t, []string{"b"}, scan.Skipped)
}

func TestProber_Scan_CancelledContextIsFault(t *testing.T) {
	checker := &fakeChecker{installed: map[string]bool{"a": true}}
	prober := newFakeProber(checker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scan, err := prober.Scan(ctx, "", fakeDefs("a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, scan.Results)
	assert.Empty(t, checker.calls)
}

func TestProber_Scan_NilDefinitionIsFault(t *testing.T) {
	prober := newFakeProber(&fakeChecker{})

	scan, err := prober.Scan(context.Background(), "", []*model.LibraryDefinition{nil})

	require.Error(t, err)
	assert.True(t, scan.Faulted())
}

func TestProber_Scan_EmptyList(t *testing.T) {
	prober := newFakeProber(&fakeChecker{})

	scan, err := prober.Scan(context.Background(), "", nil)

	require.NoError(t, err)
	assert.NotNil(t, scan)
	assert.Empty(t, scan.Results)
}

func TestProber_WithTimeout(t *testing.T) {
	var sawDeadline bool
	checker := CheckerFunc(func(ctx context.Context, _ *model.LibraryDefinition) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	})
	r := NewRegistry()
	r.Register(kindFake, checker)
	prober := NewProber(r, zerolog.Nop(), WithTimeout(5*time.Second))

	_, err := prober.Scan(context.Background(), "", fakeDefs("a"))

	require.NoError(t, err)
	assert.True(t, sawDeadline)
}

// =============================================================================
// Registry Tests
// =============================================================================

func TestRegistry_DefaultKinds(t *testing.T) {
	r := NewDefaultRegistry(Options{})

	assert.Equal(t, []string{"binary", "gomodule", "python", "sharedlib"}, r.Kinds())
	assert.True(t, r.Has("PYTHON"))
	assert.False(t, r.Has("npm"))
}

func TestRegistry_Get_Unsupported(t *testing.T) {
	r := NewDefaultRegistry(Options{})

	_, err := r.Get("npm")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported kinds: binary, gomodule, python, sharedlib")
}

func TestFault_Error(t *testing.T) {
	f := &Fault{Library: "torch", Kind: model.ProbeKindPython, Err: errors.New("segfault")}
	assert.Equal(t, "torch (python): segfault", f.Error())

	bare := &Fault{Err: errors.New("nil library definition")}
	assert.Equal(t, "nil library definition", bare.Error())
}

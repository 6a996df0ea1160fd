package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	rt := NewRuntime()
	runs := 0

	e := rt.CreateEffect(func() { runs++ })

	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if e.Runs() != 1 {
		t.Errorf("Runs() = %d, want 1", e.Runs())
	}
}

func TestEffectRerunsOnDependencyChange(t *testing.T) {
	rt := NewRuntime()
	count := NewSignalIn(rt, 0)
	var seen []int

	rt.CreateEffect(func() {
		seen = append(seen, count.Get())
	})

	count.Set(1)
	count.Set(2)

	want := []int{0, 1, 2}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestEffectRerunCompletesBeforeWriteReturns(t *testing.T) {
	rt := NewRuntime()
	s := NewSignalIn(rt, "a")
	last := ""

	rt.CreateEffect(func() { last = s.Get() })

	s.Set("b")
	if last != "b" {
		t.Errorf("last = %q, want %q immediately after Set", last, "b")
	}
}

func TestEffectDropsStaleDependencies(t *testing.T) {
	rt := NewRuntime()
	useA := NewSignalIn(rt, true)
	a := NewSignalIn(rt, 0)
	b := NewSignalIn(rt, 0)
	runs := 0

	rt.CreateEffect(func() {
		runs++
		if useA.Get() {
			_ = a.Get()
		} else {
			_ = b.Get()
		}
	})

	useA.Set(false) // run 2: now reads b, not a
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}

	a.Set(1)
	if runs != 2 {
		t.Errorf("write to no-longer-read signal reran effect: runs = %d, want 2", runs)
	}
	if a.Subscribers() != 0 {
		t.Errorf("a.Subscribers() = %d, want 0", a.Subscribers())
	}

	b.Set(1)
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestEffectCleanup(t *testing.T) {
	rt := NewRuntime()
	s := NewSignalIn(rt, 0)
	cleanups := 0

	e := rt.CreateEffectWithCleanup(func() Cleanup {
		_ = s.Get()
		return func() { cleanups++ }
	})

	s.Set(1)
	if cleanups != 1 {
		t.Errorf("cleanups after rerun = %d, want 1", cleanups)
	}

	e.Dispose()
	if cleanups != 2 {
		t.Errorf("cleanups after dispose = %d, want 2", cleanups)
	}
}

func TestEffectDispose(t *testing.T) {
	rt := NewRuntime()
	s := NewSignalIn(rt, 0)
	runs := 0

	e := rt.CreateEffect(func() {
		runs++
		_ = s.Get()
	})
	e.Dispose()
	e.Dispose()

	s.Set(1)
	if runs != 1 {
		t.Errorf("disposed effect reran: runs = %d, want 1", runs)
	}
	if !e.Disposed() {
		t.Error("Disposed() = false, want true")
	}
	if s.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", s.Subscribers())
	}
}

func TestNestedEffectRestoresEnclosingCursor(t *testing.T) {
	rt := NewRuntime()
	outerDep := NewSignalIn(rt, 0)
	innerDep := NewSignalIn(rt, 0)
	outerRuns, innerRuns := 0, 0

	var outer *Effect
	outer = rt.CreateEffect(func() {
		outerRuns++
		if outerRuns == 1 {
			rt.CreateEffect(func() {
				innerRuns++
				_ = innerDep.Get()
			})
		}
		// Read after the inner effect finished: must subscribe the outer one.
		_ = outerDep.Get()
		if rt.Current() != outer && outer != nil {
			t.Error("outer effect should be the cursor after the inner run")
		}
	})

	outerDep.Set(1)
	if outerRuns != 2 {
		t.Errorf("outerRuns = %d, want 2", outerRuns)
	}
	if innerRuns != 1 {
		t.Errorf("innerRuns = %d, want 1", innerRuns)
	}

	innerDep.Set(1)
	if innerRuns != 2 {
		t.Errorf("innerRuns = %d, want 2", innerRuns)
	}
	if outerRuns != 2 {
		t.Errorf("inner dependency reran outer effect: outerRuns = %d", outerRuns)
	}
}

func TestEffectPanicClearsCursor(t *testing.T) {
	rt := NewRuntime()
	s := NewSignalIn(rt, 0)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		rt.CreateEffect(func() {
			_ = s.Get()
			panic("render failed")
		})
	}()

	if rt.Current() != nil {
		t.Error("cursor should be cleared after a panicking effect")
	}

	// A later unrelated read must not subscribe the failed effect again.
	other := NewSignalIn(rt, 0)
	_ = other.Get()
	if other.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", other.Subscribers())
	}
}

func TestEffectWritingItsOwnDependency(t *testing.T) {
	rt := NewRuntime()
	s := NewSignalIn(rt, 0)
	runs := 0

	rt.CreateEffect(func() {
		runs++
		if s.Get() < 10 {
			s.Set(s.Peek() + 1)
		}
	})

	// Each write requeues the effect until the value settles.
	if s.Peek() != 10 {
		t.Errorf("Peek() = %d, want 10", s.Peek())
	}
	if runs != 11 {
		t.Errorf("runs = %d, want 11", runs)
	}

	s.Set(5)
	if s.Peek() != 10 {
		t.Errorf("Peek() = %d, want 10", s.Peek())
	}
	if runs != 17 {
		t.Errorf("runs = %d, want 17", runs)
	}
}

func TestOnUpdateSkipsFirstRun(t *testing.T) {
	s := NewSignal(0)
	calls := 0

	e := OnUpdate(func() { _ = s.Get() }, func() { calls++ })
	defer e.Dispose()

	if calls != 0 {
		t.Errorf("calls = %d, want 0 before any change", calls)
	}

	s.Set(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestOnMountRunsOnceUntracked(t *testing.T) {
	s := NewSignal(0)
	calls := 0

	OnMount(func() {
		calls++
		_ = s.Get()
	})
	s.Set(1)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", s.Subscribers())
	}
}

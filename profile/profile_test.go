//go:build !pprof

package profile

import "testing"

func TestConfig_Start_NoMode(t *testing.T) {
	var c Config = func() (string, string, bool) { return "", "", false }

	c = WithPath(t.TempDir())(c)
	c = WithQuiet(true)(c)

	ctrl := c.Start()
	if _, ok := ctrl.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", ctrl)
	}

	ctrl.Stop()
}

func TestConfig_Start_DisabledBuild(t *testing.T) {
	var c Config = func() (string, string, bool) { return "", "", false }

	c = WithMode("cpu")(c)

	mode, _, _ := c()
	if mode != "cpu" {
		t.Fatalf("mode = %q, want cpu", mode)
	}

	ctrl := c.Start()
	if _, ok := ctrl.(ignore); !ok {
		t.Errorf("Start() without %s tag = %T, want no-op", Tag, ctrl)
	}

	if len(Modes()) != 0 {
		t.Errorf("Modes() = %v, want none", Modes())
	}
}

func TestConfig_Options(t *testing.T) {
	c := WithQuiet(true)(WithPath("/tmp/p")(WithMode("heap")(nil)))

	mode, path, quiet := c()
	if mode != "heap" || path != "/tmp/p" || !quiet {
		t.Errorf("c() = (%q, %q, %v), want (heap, /tmp/p, true)", mode, path, quiet)
	}

	// Options never mutate the Config they are applied to.
	d := WithMode("cpu")(c)
	if m, _, _ := c(); m != "heap" {
		t.Errorf("original mode = %q after derive, want heap", m)
	}

	if m, p, _ := d(); m != "cpu" || p != "/tmp/p" {
		t.Errorf("derived = (%q, %q), want (cpu, /tmp/p)", m, p)
	}
}

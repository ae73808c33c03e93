package tac

import "testing"

func TestFormatSourceCanonicalLayout(t *testing.T) {
	source := "x=1+2*( 3-y )\nif x>0:{y=1}elif x<0:{y=-1 z=2}else:{}\nwhile x<10:{x=x+1}\nfor i in range(3):{for j in range(2):{s=s+i*j}}"
	want := `x = 1 + 2 * (3 - y)
if x > 0: {
  y = 1
} elif x < 0: {
  y = -1
  z = 2
} else: {}
while x < 10: {
  x = x + 1
}
for i in range(3): {
  for j in range(2): {
    s = s + i * j
  }
}
`
	got := FormatSource(parseSource(t, source))
	if got != want {
		t.Fatalf("unexpected formatting.\nExpected:\n%s\nGot:\n%s", want, got)
	}
}

func TestFormatSourceIsStable(t *testing.T) {
	once := FormatSource(parseSource(t, propertyProgram))
	twice := FormatSource(parseSource(t, once))
	if once != twice {
		t.Fatalf("formatting is not idempotent.\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

func TestFormatSourcePreservesGeneratedCode(t *testing.T) {
	original := compileSource(t, propertyProgram).Text()
	reformatted := compileSource(t, FormatSource(parseSource(t, propertyProgram))).Text()
	if original != reformatted {
		t.Fatalf("formatting changed the generated code")
	}
}

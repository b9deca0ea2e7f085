package game

import (
	"math"
	"testing"
	"time"
)

// base speed at 120 bpm
const base120 = 0.45 + 120.0/300.0

var difficultyTests = map[string]Difficulty{
	"easy":    {Name: "easy", HitWindow: 160 * time.Millisecond, ScrollSpeed: base120 * 0.9},
	"normal":  {Name: "normal", HitWindow: 120 * time.Millisecond, ScrollSpeed: base120},
	"hard":    {Name: "hard", HitWindow: 90 * time.Millisecond, ScrollSpeed: base120 * 1.1},
	"unknown": {Name: "normal", HitWindow: 120 * time.Millisecond, ScrollSpeed: base120},
}

func TestForDifficulty(t *testing.T) {
	for name, expected := range difficultyTests {
		out := ForDifficulty(name, 120)
		if out.Name != expected.Name ||
			out.HitWindow != expected.HitWindow ||
			math.Abs(out.ScrollSpeed-expected.ScrollSpeed) > 1e-9 {
			t.Log("name    ", name)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestScrollSpeedScalesWithTempo(t *testing.T) {
	slow := ForDifficulty("normal", 60)
	fast := ForDifficulty("normal", 240)
	if slow.ScrollSpeed >= fast.ScrollSpeed {
		t.Log("slow", slow.ScrollSpeed, "fast", fast.ScrollSpeed)
		t.Fail()
	}
}

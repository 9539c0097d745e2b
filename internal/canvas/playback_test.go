package canvas

import "testing"

func TestPlaybackLoopScenario(t *testing.T) {
	p := NewPlayback()
	p.SetFPS(2)
	p.Loop = true
	p.Start()
	frame := 0
	var visited []int
	for i := 0; i < 4; i++ {
		frame = p.Advance(0.5, frame, 3)
		visited = append(visited, frame)
	}
	want := []int{1, 2, 0, 1}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("tick %d: expected frame %d, got %d (visited %v)", i, want[i], visited[i], visited)
		}
	}
}

func TestPlaybackKeepsPartialPeriods(t *testing.T) {
	p := Playback{FPS: 4, Loop: true, Playing: true}
	frame := 0
	frame = p.Advance(0.125, frame, 10)
	if frame != 0 {
		t.Fatalf("expected no advance, got %d", frame)
	}
	// 0.125 + 0.25 crosses one 0.25s period and leaves 0.125 behind.
	frame = p.Advance(0.25, frame, 10)
	if frame != 1 {
		t.Fatalf("expected 1, got %d", frame)
	}
	frame = p.Advance(0.125, frame, 10)
	if frame != 2 {
		t.Fatalf("expected 2 from carried remainder, got %d", frame)
	}
}

func TestPlaybackNeverExceedsElapsed(t *testing.T) {
	p := Playback{FPS: 24, Loop: true, Playing: true}
	frame := 0
	advances := 0
	for i := 0; i < 1000; i++ {
		next := p.Advance(1.0/60, frame, 1000000)
		advances += next - frame
		frame = next
	}
	// 1000 ticks of 1/60s is 16.67s, at most 400 frames.
	if advances > 400 || advances < 399 {
		t.Fatalf("expected about 400 advances, got %d", advances)
	}
}

func TestPlaybackHoldsWithoutLoop(t *testing.T) {
	p := Playback{FPS: 1, Loop: false, Playing: true}
	frame := p.Advance(10, 0, 3)
	if frame != 2 {
		t.Fatalf("expected hold on last frame, got %d", frame)
	}
	if p.Playing {
		t.Fatalf("expected playback to stop at the end")
	}
	if got := p.Advance(5, frame, 3); got != 2 {
		t.Fatalf("expected to stay on last frame, got %d", got)
	}
}

func TestPlaybackFPSBounds(t *testing.T) {
	p := NewPlayback()
	p.SetFPS(0)
	if p.FPS != MinFPS {
		t.Fatalf("expected %v, got %v", MinFPS, p.FPS)
	}
	p.SetFPS(500)
	if p.FPS != MaxFPS {
		t.Fatalf("expected %v, got %v", MaxFPS, p.FPS)
	}
}

func TestPlaybackSingleFrame(t *testing.T) {
	p := Playback{FPS: 60, Loop: true, Playing: true}
	if got := p.Advance(3, 0, 1); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestPlaybackStopped(t *testing.T) {
	p := NewPlayback()
	if got := p.Advance(3, 1, 4); got != 1 {
		t.Fatalf("stopped playback advanced to %d", got)
	}
	p.Toggle()
	if !p.Playing {
		t.Fatalf("expected toggle to start playback")
	}
	p.Toggle()
	if p.Playing {
		t.Fatalf("expected toggle to stop playback")
	}
}

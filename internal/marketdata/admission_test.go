package marketdata

import (
	"context"
	"testing"
	"time"
)

func TestAdmissionController_UnderLimit(t *testing.T) {
	ctrl := NewAdmissionController(5, 25)

	for i := 0; i < 5; i++ {
		ok, err := ctrl.Acquire(context.Background())
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		if !ok {
			t.Fatalf("Acquire %d = false, want true under the daily limit", i)
		}
	}

	status := ctrl.Status()
	if status.CallsLastMinute != 5 {
		t.Errorf("CallsLastMinute = %d, want 5", status.CallsLastMinute)
	}
	if status.CallsLastDay != 5 {
		t.Errorf("CallsLastDay = %d, want 5", status.CallsLastDay)
	}
}

func TestAdmissionController_DailyBudgetExhausted(t *testing.T) {
	ctrl := NewAdmissionController(100, 3)

	for i := 0; i < 3; i++ {
		if ok, _ := ctrl.Acquire(context.Background()); !ok {
			t.Fatalf("Acquire %d should succeed", i)
		}
	}

	ok, err := ctrl.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if ok {
		t.Error("Acquire = true, want false once the daily budget is spent")
	}
}

func TestAdmissionController_MinuteWindowWaits(t *testing.T) {
	ctrl := NewAdmissionController(2, 25)
	current := time.Now()
	ctrl.now = func() time.Time { return current }

	// Fill the minute window, then backdate the oldest call so the computed
	// wait is already in the past and Acquire proceeds without sleeping.
	if ok, _ := ctrl.Acquire(context.Background()); !ok {
		t.Fatal("first Acquire should succeed")
	}
	if ok, _ := ctrl.Acquire(context.Background()); !ok {
		t.Fatal("second Acquire should succeed")
	}
	current = current.Add(61 * time.Second)

	done := make(chan bool, 1)
	go func() {
		ok, _ := ctrl.Acquire(context.Background())
		done <- ok
	}()

	select {
	case ok := <-done:
		if !ok {
			t.Error("Acquire = false, want true after the window slides")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Acquire should not block once the minute window has passed")
	}
}

func TestAdmissionController_MinuteWindowContextCancel(t *testing.T) {
	ctrl := NewAdmissionController(1, 25)

	if ok, _ := ctrl.Acquire(context.Background()); !ok {
		t.Fatal("first Acquire should succeed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ok, err := ctrl.Acquire(ctx)
	if ok {
		t.Error("Acquire = true, want false when cancelled mid-wait")
	}
	if err == nil {
		t.Error("Acquire should return the context error when cancelled")
	}
}

func TestAdmissionController_StatusAvailableDuringWait(t *testing.T) {
	ctrl := NewAdmissionController(1, 25)

	if ok, _ := ctrl.Acquire(context.Background()); !ok {
		t.Fatal("first Acquire should succeed")
	}

	// Park a second caller in its minute-window sleep.
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	waiting := make(chan struct{})
	go func() {
		close(waiting)
		ctrl.Acquire(ctx)
	}()
	<-waiting
	time.Sleep(50 * time.Millisecond)

	done := make(chan int, 1)
	go func() {
		done <- ctrl.Status().CallsLastMinute
	}()

	select {
	case calls := <-done:
		if calls != 1 {
			t.Errorf("CallsLastMinute = %d, want 1", calls)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Status should not block behind a caller waiting on the minute window")
	}
}

func TestMinuteWait(t *testing.T) {
	now := time.Now()

	if w := minuteWait(nil, now, 1); w != 0 {
		t.Errorf("minuteWait(empty log) = %v, want 0", w)
	}

	log := []time.Time{now.Add(-30 * time.Second)}
	if w := minuteWait(log, now, 1); w <= 0 {
		t.Errorf("minuteWait = %v, want positive while the window is full", w)
	}

	// The slot frees once the oldest in-window call ages past 60s.
	if w := minuteWait(log, now.Add(31*time.Second), 1); w > 0 {
		t.Errorf("minuteWait = %v, want <=0 after the window slides", w)
	}

	// With room under the limit there is no wait at all.
	if w := minuteWait(log, now, 2); w != 0 {
		t.Errorf("minuteWait = %v, want 0 under the limit", w)
	}
}

func TestAdmissionController_PruneExpiredEntries(t *testing.T) {
	ctrl := NewAdmissionController(5, 3)
	current := time.Now()
	ctrl.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		ctrl.Acquire(context.Background())
	}
	current = current.Add(25 * time.Hour)

	status := ctrl.Status()
	if status.CallsLastDay != 0 {
		t.Errorf("CallsLastDay = %d, want 0 after the day window passes", status.CallsLastDay)
	}

	if ok, _ := ctrl.Acquire(context.Background()); !ok {
		t.Error("Acquire should succeed again after old entries expire")
	}
}

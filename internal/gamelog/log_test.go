package gamelog

import "testing"

func TestAppendAndTail(t *testing.T) {
	log := New()
	if log.Len() != 0 || log.Last() != "" {
		t.Fatalf("new log: Len() = %d, Last() = %q, want empty", log.Len(), log.Last())
	}

	log.Append("first")
	log.Append("you take %d damage", 3)
	log.Append("third")

	if log.Len() != 3 {
		t.Errorf("Len() = %d, want 3", log.Len())
	}
	if log.Last() != "third" {
		t.Errorf("Last() = %q, want %q", log.Last(), "third")
	}

	tail := log.Tail(2)
	if len(tail) != 2 || tail[0] != "you take 3 damage" || tail[1] != "third" {
		t.Errorf("Tail(2) = %v, want the last two messages", tail)
	}

	if tail := log.Tail(10); len(tail) != 3 {
		t.Errorf("Tail(10) = %d messages, want all 3", len(tail))
	}
	if tail := log.Tail(0); tail != nil {
		t.Errorf("Tail(0) = %v, want nil", tail)
	}
}

func TestTailIsACopy(t *testing.T) {
	log := New()
	log.Append("one")

	tail := log.Tail(1)
	tail[0] = "mutated"
	if log.Last() != "one" {
		t.Error("mutating the tail changed the log")
	}
}

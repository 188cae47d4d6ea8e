package identity

import "testing"

func TestHolderStartsEmpty(t *testing.T) {
	h := NewHolder()
	if _, ok := h.Current(); ok {
		t.Fatal("expected no session initially")
	}
}

func TestSubscribeFiresImmediatelyAndOnChange(t *testing.T) {
	h := NewHolder()

	var got []*Session
	unsubscribe := h.Subscribe(func(s *Session) { got = append(got, s) })

	if len(got) != 1 || got[0] != nil {
		t.Fatalf("expected immediate nil notification, got %v", got)
	}

	h.set(&Session{UID: "u1"})
	if len(got) != 2 || got[1] == nil || got[1].UID != "u1" {
		t.Fatalf("expected sign-in notification, got %v", got)
	}

	h.set(nil)
	if len(got) != 3 || got[2] != nil {
		t.Fatalf("expected sign-out notification, got %v", got)
	}

	unsubscribe()
	h.set(&Session{UID: "u2"})
	if len(got) != 3 {
		t.Fatal("expected no notifications after unsubscribe")
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	h := NewHolder()
	h.set(&Session{UID: "u1", Username: "sam"})

	s, ok := h.Current()
	if !ok || s.UID != "u1" {
		t.Fatalf("expected session, got %+v ok=%v", s, ok)
	}
	s.Username = "mutated"

	again, _ := h.Current()
	if again.Username != "sam" {
		t.Fatal("holder state leaked through Current")
	}
}

package transcript

import (
	"context"
	"strings"
	"testing"

	"mianshictl/internal/api"
	"mianshictl/internal/interview"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFromMessages(t *testing.T) {
	meeting := &api.Meeting{ID: 7, Candidate: "Li Na", Position: "Backend Engineer"}
	messages := []interview.Message{
		{Speaker: interview.SpeakerAI, Text: interview.Greeting},
		{Speaker: interview.SpeakerUser, Text: "I worked on payment systems."},
		{Speaker: interview.SpeakerAI, Text: "Tell me about idempotency."},
		{Speaker: interview.SpeakerUser, Text: "We used request keys."},
	}

	tr := FromMessages("sess-1", meeting, messages)
	if tr.ID != "sess-1" {
		t.Errorf("ID = %q", tr.ID)
	}
	if tr.MeetingID != 7 || tr.Candidate != "Li Na" || tr.Position != "Backend Engineer" {
		t.Errorf("meeting fields not carried over: %+v", tr)
	}
	if tr.Turns != 2 {
		t.Errorf("Turns = %d, want 2", tr.Turns)
	}
	if !strings.Contains(tr.Text, "candidate: I worked on payment systems.") {
		t.Errorf("rendered text missing candidate line:\n%s", tr.Text)
	}
	if !strings.Contains(tr.Text, "interviewer: Tell me about idempotency.") {
		t.Errorf("rendered text missing interviewer line:\n%s", tr.Text)
	}
}

func TestFromMessagesNilMeeting(t *testing.T) {
	tr := FromMessages("sess-2", nil, nil)
	if tr.ID != "sess-2" || tr.MeetingID != 0 || tr.Turns != 0 {
		t.Errorf("unexpected transcript: %+v", tr)
	}
}

func TestArchiveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tr := Transcript{
		ID:        "sess-1",
		MeetingID: 3,
		Candidate: "Wang Wei",
		Position:  "SRE",
		StartedAt: 1700000000,
		Turns:     5,
		Text:      "interviewer: hello\ncandidate: hi\n",
	}
	if err := store.Archive(ctx, tr); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got != tr {
		t.Errorf("Get = %+v, want %+v", *got, tr)
	}
}

func TestArchiveRejectsEmptyID(t *testing.T) {
	store := newTestStore(t)
	if err := store.Archive(context.Background(), Transcript{}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestArchiveReplacesSameSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := Transcript{ID: "sess-1", Turns: 1, Text: "candidate: hi\n", StartedAt: 1}
	second := Transcript{ID: "sess-1", Turns: 2, Text: "candidate: hi\ncandidate: more\n", StartedAt: 2}
	if err := store.Archive(ctx, first); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if err := store.Archive(ctx, second); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Turns != 2 {
		t.Errorf("Turns = %d, want 2 (replacement)", got.Turns)
	}

	list, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"old", "mid", "new"} {
		tr := Transcript{ID: id, StartedAt: int64(100 * (i + 1)), Text: "candidate: x\n"}
		if err := store.Archive(ctx, tr); err != nil {
			t.Fatalf("Archive(%s) failed: %v", id, err)
		}
	}

	list, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].ID != "new" || list[1].ID != "mid" {
		t.Errorf("unexpected order: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestSearchFindsArchivedText(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	kube := Transcript{
		ID:        "sess-kube",
		Candidate: "Zhang San",
		Position:  "Platform Engineer",
		StartedAt: 100,
		Text:      "candidate: I migrated our services onto kubernetes last year.\n",
	}
	db := Transcript{
		ID:        "sess-db",
		Candidate: "Li Si",
		Position:  "DBA",
		StartedAt: 200,
		Text:      "candidate: Mostly index tuning and replication work.\n",
	}
	for _, tr := range []Transcript{kube, db} {
		if err := store.Archive(ctx, tr); err != nil {
			t.Fatalf("Archive failed: %v", err)
		}
	}

	hits, err := store.Search(ctx, "kubernetes", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].ID != "sess-kube" {
		t.Errorf("hit id = %q", hits[0].ID)
	}
	if hits[0].Transcript.Candidate != "Zhang San" {
		t.Errorf("hit not resolved to stored row: %+v", hits[0].Transcript)
	}
	if hits[0].Score <= 0 {
		t.Errorf("score = %f", hits[0].Score)
	}
}

func TestDeleteRemovesRowAndHit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tr := Transcript{ID: "sess-1", StartedAt: 1, Text: "candidate: graphql resolvers\n"}
	if err := store.Archive(ctx, tr); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "sess-1"); err == nil {
		t.Error("expected Get to fail after delete")
	}
	hits, err := store.Search(ctx, "graphql", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("len(hits) = %d after delete, want 0", len(hits))
	}
}

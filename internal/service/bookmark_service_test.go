package service

import (
	"context"
	"errors"
	"testing"

	"mindlift/internal/entity"

	"github.com/google/uuid"
)

func TestBookmarkUnknownVideo(t *testing.T) {
	svc := NewBookmarkService(&fakeBookmarkRepo{}, newFakeVideoRepo())

	err := svc.Add(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("err = %v, want ErrVideoNotFound", err)
	}
}

func TestBookmarkIsIdempotent(t *testing.T) {
	bookmarks := &fakeBookmarkRepo{}
	videos := newFakeVideoRepo()
	svc := NewBookmarkService(bookmarks, videos)

	userID := uuid.New()
	video := videos.add(&entity.Video{OwnerID: uuid.New(), Title: "Talk", Status: entity.VideoApproved})

	if err := svc.Add(context.Background(), userID, video.ID); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := svc.Add(context.Background(), userID, video.ID); err != nil {
		t.Fatalf("second Add: %v", err)
	}

	list, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("bookmarks = %d, want 1", len(list))
	}
}

func TestBookmarkRemove(t *testing.T) {
	bookmarks := &fakeBookmarkRepo{}
	videos := newFakeVideoRepo()
	svc := NewBookmarkService(bookmarks, videos)

	userID := uuid.New()
	video := videos.add(&entity.Video{OwnerID: uuid.New(), Title: "Talk", Status: entity.VideoApproved})

	if err := svc.Add(context.Background(), userID, video.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Remove(context.Background(), userID, video.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	list, _ := svc.List(context.Background(), userID)
	if len(list) != 0 {
		t.Errorf("bookmarks = %d after removal, want 0", len(list))
	}

	// Removing again is a no-op.
	if err := svc.Remove(context.Background(), userID, video.ID); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

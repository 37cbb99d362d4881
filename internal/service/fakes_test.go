package service

import (
	"context"
	"errors"
	"io"
	"time"

	"mindlift/internal/entity"
	"mindlift/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("connection refused")

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User

	findByEmailErr error
	createErr      error

	lastLoginStamped []uuid.UUID
	paid             []uuid.UUID
	deleted          []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) add(user *entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
		}
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.findByEmailErr != nil {
		return nil, r.findByEmailErr
	}
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) VerifyEmail(_ context.Context, userID uuid.UUID) error {
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	now := time.Now()
	user.EmailVerifiedAt = &now
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, userID uuid.UUID) error {
	r.lastLoginStamped = append(r.lastLoginStamped, userID)
	return nil
}

func (r *fakeUserRepo) SetPaid(_ context.Context, userID uuid.UUID) error {
	r.paid = append(r.paid, userID)
	if user, ok := r.users[userID]; ok {
		user.IsPaid = true
	}
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]entity.User, error) {
	var out []entity.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role entity.UserRole) ([]entity.User, error) {
	var out []entity.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountPaid(_ context.Context) (int64, error) {
	var n int64
	for _, user := range r.users {
		if user.IsPaid {
			n++
		}
	}
	return n, nil
}

type fakeSpeakerRepo struct {
	speakers map[uuid.UUID]*entity.Speaker
}

func newFakeSpeakerRepo() *fakeSpeakerRepo {
	return &fakeSpeakerRepo{speakers: make(map[uuid.UUID]*entity.Speaker)}
}

func (r *fakeSpeakerRepo) add(speaker *entity.Speaker) *entity.Speaker {
	if speaker.ID == uuid.Nil {
		speaker.ID = uuid.New()
	}
	r.speakers[speaker.ID] = speaker
	return speaker
}

func (r *fakeSpeakerRepo) WithTx(*gorm.DB) repository.SpeakerRepository { return r }

func (r *fakeSpeakerRepo) Create(_ context.Context, speaker *entity.Speaker) error {
	for _, existing := range r.speakers {
		if existing.UserID == speaker.UserID {
			return errors.New(`duplicate key value violates unique constraint "idx_speakers_user_id"`)
		}
	}
	r.add(speaker)
	return nil
}

func (r *fakeSpeakerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Speaker, error) {
	return r.speakers[id], nil
}

func (r *fakeSpeakerRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Speaker, error) {
	for _, speaker := range r.speakers {
		if speaker.UserID == userID {
			return speaker, nil
		}
	}
	return nil, nil
}

func (r *fakeSpeakerRepo) Update(_ context.Context, speaker *entity.Speaker) error {
	r.speakers[speaker.ID] = speaker
	return nil
}

func (r *fakeSpeakerRepo) ListByStatus(_ context.Context, status entity.ApprovalStatus, _, _ int) ([]entity.Speaker, error) {
	var out []entity.Speaker
	for _, speaker := range r.speakers {
		if speaker.ApprovalStatus == status {
			out = append(out, *speaker)
		}
	}
	return out, nil
}

func (r *fakeSpeakerRepo) CountByStatus(_ context.Context, status entity.ApprovalStatus) (int64, error) {
	var n int64
	for _, speaker := range r.speakers {
		if speaker.ApprovalStatus == status {
			n++
		}
	}
	return n, nil
}

type fakeVideoRepo struct {
	videos map[uuid.UUID]*entity.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uuid.UUID]*entity.Video)}
}

func (r *fakeVideoRepo) add(video *entity.Video) *entity.Video {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	r.videos[video.ID] = video
	return video
}

func (r *fakeVideoRepo) WithTx(*gorm.DB) repository.VideoRepository { return r }

func (r *fakeVideoRepo) Create(_ context.Context, video *entity.Video) error {
	r.add(video)
	return nil
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Video, error) {
	return r.videos[id], nil
}

func (r *fakeVideoRepo) Update(_ context.Context, video *entity.Video) error {
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) ListPublic(_ context.Context, _ string, _, _ int) ([]entity.Video, error) {
	var out []entity.Video
	for _, video := range r.videos {
		if video.Status == entity.VideoApproved {
			out = append(out, *video)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) ListPending(_ context.Context) ([]entity.Video, error) {
	var out []entity.Video
	for _, video := range r.videos {
		if video.Status == entity.VideoPending {
			out = append(out, *video)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _ int) ([]entity.Video, error) {
	var out []entity.Video
	for _, video := range r.videos {
		if video.OwnerID == ownerID {
			out = append(out, *video)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) CountByStatus(_ context.Context, status entity.VideoStatus) (int64, error) {
	var n int64
	for _, video := range r.videos {
		if video.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeVideoRepo) CountByOwner(_ context.Context, ownerID uuid.UUID, status entity.VideoStatus) (int64, error) {
	var n int64
	for _, video := range r.videos {
		if video.OwnerID != ownerID {
			continue
		}
		if status != "" && video.Status != status {
			continue
		}
		n++
	}
	return n, nil
}

type fakeBookmarkRepo struct {
	bookmarks []entity.Bookmark
}

func (r *fakeBookmarkRepo) Create(_ context.Context, bookmark *entity.Bookmark) error {
	for _, existing := range r.bookmarks {
		if existing.UserID == bookmark.UserID && existing.VideoID == bookmark.VideoID {
			return nil
		}
	}
	bookmark.ID = uuid.New()
	r.bookmarks = append(r.bookmarks, *bookmark)
	return nil
}

func (r *fakeBookmarkRepo) Delete(_ context.Context, userID, videoID uuid.UUID) error {
	kept := r.bookmarks[:0]
	for _, bookmark := range r.bookmarks {
		if bookmark.UserID == userID && bookmark.VideoID == videoID {
			continue
		}
		kept = append(kept, bookmark)
	}
	r.bookmarks = kept
	return nil
}

func (r *fakeBookmarkRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Bookmark, error) {
	var out []entity.Bookmark
	for _, bookmark := range r.bookmarks {
		if bookmark.UserID == userID {
			out = append(out, bookmark)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
	emailSent     []uuid.UUID
}

func (r *fakeNotificationRepo) WithTx(*gorm.DB) repository.NotificationRepository { return r }

func (r *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	notification.ID = uuid.New()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			out = append(out, *notification)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.Read {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) (bool, error) {
	for _, notification := range r.notifications {
		if notification.ID == id && notification.UserID == userID {
			notification.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			notification.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) ListUnsentEmail(_ context.Context, limit int) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, notification := range r.notifications {
		if notification.EmailSent {
			continue
		}
		out = append(out, *notification)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkEmailSent(_ context.Context, id uuid.UUID) error {
	r.emailSent = append(r.emailSent, id)
	for _, notification := range r.notifications {
		if notification.ID == id {
			notification.EmailSent = true
		}
	}
	return nil
}

type fakeVerificationRepo struct {
	tokens []*entity.VerificationToken
}

func (r *fakeVerificationRepo) Create(_ context.Context, token *entity.VerificationToken) error {
	token.ID = uuid.New()
	r.tokens = append(r.tokens, token)
	return nil
}

func (r *fakeVerificationRepo) FindValid(_ context.Context, tokenHash string, tokenType entity.VerificationType) (*entity.VerificationToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && token.Type == tokenType && token.UsedAt == nil && token.ExpiresAt.After(time.Now()) {
			return token, nil
		}
	}
	return nil, nil
}

func (r *fakeVerificationRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	for _, token := range r.tokens {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
		}
	}
	return nil
}

// fakeHasher marks hashes with a prefix so tests can assert without
// paying bcrypt cost.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(hash string, password string) bool {
	return hash == "hashed:"+password
}

type fakeIssuer struct {
	err    error
	issued int
}

func (f *fakeIssuer) IssueSessionToken(user *entity.User) (string, time.Duration, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	f.issued++
	return "token-" + user.ID.String(), time.Hour, nil
}

type notifyCall struct {
	userID  uuid.UUID
	typ     entity.NotificationType
	title   string
	message string
	data    map[string]any
}

type fakeNotifier struct {
	calls []notifyCall
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, _ *gorm.DB, userID uuid.UUID, typ entity.NotificationType, title string, message string, data map[string]any) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, notifyCall{userID: userID, typ: typ, title: title, message: message, data: data})
	return nil
}

func (f *fakeNotifier) callsFor(userID uuid.UUID) []notifyCall {
	var out []notifyCall
	for _, call := range f.calls {
		if call.userID == userID {
			out = append(out, call)
		}
	}
	return out
}

type sentEmail struct {
	to      string
	subject string
	message string
}

type fakeEmailSender struct {
	resets []sentEmail
	sent   []sentEmail
	err    error
}

func (f *fakeEmailSender) SendPasswordResetEmail(_ context.Context, email string, token string) error {
	if f.err != nil {
		return f.err
	}
	f.resets = append(f.resets, sentEmail{to: email, message: token})
	return nil
}

func (f *fakeEmailSender) SendNotificationEmail(_ context.Context, email string, subject string, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: email, subject: subject, message: message})
	return nil
}

type uploadedObject struct {
	key         string
	contentType string
	body        []byte
}

type fakeMediaStore struct {
	uploads   []uploadedObject
	deleted   []string
	uploadErr error
}

func (f *fakeMediaStore) Upload(_ context.Context, key string, contentType string, body io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, _ := io.ReadAll(body)
	f.uploads = append(f.uploads, uploadedObject{key: key, contentType: contentType, body: data})
	return nil
}

func (f *fakeMediaStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://media.test/" + key, nil
}

func (f *fakeMediaStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakePusher struct {
	pushes []uuid.UUID
}

func (f *fakePusher) Push(userID uuid.UUID, _ any) {
	f.pushes = append(f.pushes, userID)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

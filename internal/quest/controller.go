// Package quest orchestrates the quest lifecycle: creation, generation,
// verification, and completion, plus the reconciliation that keeps the
// session and stats read-models in sync with the server afterwards.
package quest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/emberforge/lifequest/internal/session"
	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

// Controller runs user-triggered quest operations. Every operation is
// independent: a failure in one never blocks another, and no state is
// retained across an attempt boundary except the open verification
// session.
type Controller struct {
	client  *client.Client
	session *session.Store
	log     *zap.Logger

	mu           sync.Mutex
	verification *VerificationSession
}

// NewController creates a quest controller.
func NewController(c *client.Client, s *session.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{client: c, session: s, log: log}
}

// CreateQuest validates the form and posts it. The caller re-fetches
// the active list on success; no optimistic insert happens because the
// server may adjust reward fields.
func (c *Controller) CreateQuest(ctx context.Context, req client.CreateQuestRequest) (*domain.Quest, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionMissing
	}
	if !domain.ValidDifficulty(req.Difficulty) {
		return nil, ErrBadDifficulty
	}
	if !domain.ValidCategory(req.Category) {
		return nil, ErrBadCategory
	}

	created, err := c.client.CreateQuest(ctx, req)
	if err != nil {
		return nil, err
	}
	c.log.Info("quest created", zap.String("quest_id", created.ID))
	return created, nil
}

// GenerateQuest asks the server to generate a quest for the category.
func (c *Controller) GenerateQuest(ctx context.Context, category string) (*domain.Quest, error) {
	if !domain.ValidCategory(category) {
		return nil, ErrBadCategory
	}
	quest, err := c.client.GenerateQuest(ctx, category)
	if err != nil {
		return nil, err
	}
	c.log.Info("quest generated", zap.String("quest_id", quest.ID), zap.String("category", category))
	return quest, nil
}

// CompletionResult carries the reward plus the reconciled read-models.
// Stats or User may be nil if its refetch failed; the completion itself
// still succeeded.
type CompletionResult struct {
	Reward domain.CompletionReward
	Stats  *domain.Stats
	User   *domain.User
}

// CompleteQuest posts a completion request. On success it always
// refetches both the stats snapshot and the session user, because gold
// is tracked in both and neither may be incremented locally. The two
// refetches are independent; one failing does not cancel the other.
func (c *Controller) CompleteQuest(ctx context.Context, questID string) (*CompletionResult, error) {
	reward, err := c.client.CompleteQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{Reward: *reward}
	var g errgroup.Group
	g.Go(func() error {
		stats, err := c.client.Stats(ctx)
		if err != nil {
			c.log.Warn("stats refetch after completion failed", zap.Error(err))
			return nil
		}
		result.Stats = stats
		return nil
	})
	g.Go(func() error {
		user, err := c.session.Refresh(ctx)
		if err != nil {
			c.log.Warn("session refresh after completion failed", zap.Error(err))
			return nil
		}
		result.User = user
		return nil
	})
	g.Wait() //nolint:errcheck // goroutines swallow their own errors

	c.log.Info("quest completed",
		zap.String("quest_id", questID),
		zap.Int("xp_gained", reward.XPGained),
		zap.Int("gold_gained", reward.GoldGained),
		zap.Bool("level_up", reward.LevelUp))
	return result, nil
}

// ChooseAvatar sets the avatar and refreshes the session so the routed
// user record carries it.
func (c *Controller) ChooseAvatar(ctx context.Context, avatar domain.Avatar) error {
	if err := c.client.SetAvatar(ctx, avatar); err != nil {
		return err
	}
	if _, err := c.session.Refresh(ctx); err != nil {
		return fmt.Errorf("avatar set but refresh failed: %w", err)
	}
	return nil
}

// PurchaseItem gates a shop purchase on the session user's gold. There
// is no purchase endpoint yet; an affordable purchase succeeds locally.
func (c *Controller) PurchaseItem(item domain.ShopItem) error {
	user := c.session.User()
	if user == nil {
		return ErrNotAuthenticated
	}
	if user.Gold < item.Cost {
		return ErrInsufficientGold
	}
	return nil
}

// Snapshot joins the independent fetches a page needs before rendering.
type Snapshot struct {
	Stats     *domain.Stats
	Active    []domain.Quest
	Completed []domain.Quest
	Friends   []domain.Friend
}

// DashboardSnapshot fetches stats and active quests in parallel. The
// two target disjoint state, so ordering between them is irrelevant.
func (c *Controller) DashboardSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.client.Stats(gctx)
		snap.Stats = stats
		return err
	})
	g.Go(func() error {
		quests, err := c.client.ActiveQuests(gctx)
		snap.Active = quests
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ProfileSnapshot fetches stats, completed quests, and friends in
// parallel for the profile page.
func (c *Controller) ProfileSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.client.Stats(gctx)
		snap.Stats = stats
		return err
	})
	g.Go(func() error {
		quests, err := c.client.CompletedQuests(gctx)
		snap.Completed = quests
		return err
	})
	g.Go(func() error {
		friends, err := c.client.Friends(gctx)
		snap.Friends = friends
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// StartVerification opens a verification session for a quest,
// replacing any previous one.
func (c *Controller) StartVerification(questID string) *VerificationSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verification = newVerificationSession(questID)
	return c.verification
}

// Verification returns the open verification session, or nil.
func (c *Controller) Verification() *VerificationSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verification
}

// CloseVerification discards the open verification session.
func (c *Controller) CloseVerification() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verification = nil
}

// UploadPhoto submits photo evidence for the quest under verification.
// Success closes the session; failure keeps it open, but the photo must
// be re-attached to retry.
func (c *Controller) UploadPhoto(ctx context.Context, filename string, photo []byte) error {
	sess := c.Verification()
	if sess == nil {
		return ErrNoVerification
	}
	if len(photo) == 0 {
		return ErrNoPhoto
	}
	if err := c.client.UploadPhotoProof(ctx, sess.QuestID, filename, photo); err != nil {
		return err
	}
	c.CloseVerification()
	c.log.Info("photo proof uploaded", zap.String("quest_id", sess.QuestID))
	return nil
}

// GenerateQuiz submits study notes for the quest under verification and
// installs the returned questions with unanswered placeholder slots.
func (c *Controller) GenerateQuiz(ctx context.Context, notes string) ([]domain.QuizQuestion, error) {
	sess := c.Verification()
	if sess == nil {
		return nil, ErrNoVerification
	}
	if strings.TrimSpace(notes) == "" {
		return nil, ErrEmptyNotes
	}
	questions, err := c.client.GenerateQuiz(ctx, sess.QuestID, notes)
	if err != nil {
		return nil, err
	}
	sess.Notes = notes
	sess.SetQuiz(questions)
	return questions, nil
}

// SubmitQuiz posts the answer sequence. Submission is refused locally
// while any slot is unfilled. A passing grade closes the session; a
// failing one leaves quiz and answers in place for revision, with
// unlimited resubmission.
func (c *Controller) SubmitQuiz(ctx context.Context) (*domain.QuizResult, error) {
	sess := c.Verification()
	if sess == nil {
		return nil, ErrNoVerification
	}
	if len(sess.Questions) == 0 {
		return nil, ErrNoQuiz
	}
	if !sess.AllAnswered() {
		return nil, ErrUnansweredQuestion
	}
	result, err := c.client.SubmitQuiz(ctx, sess.QuestID, sess.Answers)
	if err != nil {
		return nil, err
	}
	if result.Passed {
		c.CloseVerification()
	}
	c.log.Info("quiz submitted",
		zap.String("quest_id", sess.QuestID),
		zap.Bool("passed", result.Passed),
		zap.Int("score", result.Score))
	return result, nil
}

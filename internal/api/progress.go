package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/journal"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

// CompleteStory handles POST /api/children/:id/stories/:story/complete.
func (h *Handler) CompleteStory(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	storyID := c.Param("story")
	if _, err := h.svc.Catalog.Get(storyID); err != nil {
		h.writeError(c, err)
		return
	}
	unlocked := h.svc.Tracker.CompleteStory(c.Request.Context(), ch.ID, storyID)
	c.JSON(http.StatusOK, gin.H{"storyId": storyID, "completed": true, "unlocked": nonNil(unlocked)})
}

// ToggleFavorite handles POST /api/children/:id/stories/:story/favorite.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	storyID := c.Param("story")
	if _, err := h.svc.Catalog.Get(storyID); err != nil {
		h.writeError(c, err)
		return
	}
	fav, unlocked := h.svc.Tracker.ToggleFavorite(c.Request.Context(), ch.ID, storyID)
	c.JSON(http.StatusOK, gin.H{"storyId": storyID, "favorite": fav, "unlocked": nonNil(unlocked)})
}

// ListQuizzes handles GET /api/children/:id/quizzes, newest first.
func (h *Handler) ListQuizzes(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	sessions := h.svc.Sessions.ForChild(c.Request.Context(), ch.ID)
	if sessions == nil {
		sessions = []quiz.Session{}
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": sessions})
}

type quizAnswer struct {
	StoryID  string           `json:"storyId" binding:"required"`
	ChoiceID catalog.ChoiceID `json:"choiceId" binding:"required"`
}

type quizRequest struct {
	AgeRange catalog.AgeBand `json:"ageRange"`
	Answers  []quizAnswer    `json:"answers" binding:"required,min=1,dive"`
}

// SubmitQuiz handles POST /api/children/:id/quizzes. The answers are scored,
// stored as a finished session and summarized.
func (h *Handler) SubmitQuiz(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	ctx := c.Request.Context()

	band := req.AgeRange
	if band == "" {
		band = h.svc.AgeBandFor(ctx, ch)
	} else if !band.Valid() {
		h.writeError(c, fmt.Errorf("%w: unknown age range %q", errBadRequest, band))
		return
	}

	stories := make([]catalog.Story, 0, len(req.Answers))
	for _, a := range req.Answers {
		s, err := h.svc.Catalog.Get(a.StoryID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		stories = append(stories, s)
	}

	now := h.svc.Now()
	b := quiz.NewBuilder(band, stories, ch.ID, now)
	for i, a := range req.Answers {
		if _, ok := stories[i].Choice(a.ChoiceID); !ok {
			h.writeError(c, fmt.Errorf("%w: story %s has no choice %q", errBadRequest, a.StoryID, a.ChoiceID))
			return
		}
		b.Answer(stories[i], a.ChoiceID, now)
	}

	session := b.Finish(now)
	unlocked := h.svc.Tracker.FinishQuiz(ctx, ch.ID, session)
	session.ChildID = ch.ID
	score := session.Score()
	summary := quiz.Summarize(session)

	c.JSON(http.StatusCreated, gin.H{
		"session":   session,
		"score":     score,
		"grade":     score.Grade(),
		"summary":   summary,
		"shareText": quiz.ShareText(session, summary),
		"unlocked":  nonNil(unlocked),
	})
}

// Achievements handles GET /api/children/:id/achievements.
func (h *Handler) Achievements(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	all := h.svc.Achievements.Get(c.Request.Context(), ch.ID)
	c.JSON(http.StatusOK, gin.H{
		"achievements": all,
		"summary":      achievement.Summarize(all),
	})
}

// Streak handles GET /api/children/:id/streak.
func (h *Handler) Streak(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	resp := gin.H{"streak": h.svc.Ledger.CurrentStreak(ctx, ch.ID, h.svc.Now())}
	if last, ok := h.svc.Ledger.LastActivity(ctx, ch.ID); ok {
		resp["lastActivityDate"] = last
	}
	c.JSON(http.StatusOK, resp)
}

// Growth handles GET /api/children/:id/growth.
func (h *Handler) Growth(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	sessions := h.svc.Sessions.CompletedForChild(c.Request.Context(), ch.ID)
	c.JSON(http.StatusOK, quiz.Overview(ch.Name, sessions))
}

// ListJournal handles GET /api/children/:id/journal, newest first.
func (h *Handler) ListJournal(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	entries := h.svc.Journal.Entries(ctx, ch.ID)
	if entries == nil {
		entries = []journal.Entry{}
	}
	resp := gin.H{"entries": entries}
	if today, ok := h.svc.Journal.TodaysEntry(ctx, ch.ID, h.svc.Now()); ok {
		resp["today"] = today
	}
	c.JSON(http.StatusOK, resp)
}

type journalRequest struct {
	Feeling string  `json:"feeling" binding:"required,max=32"`
	Emoji   string  `json:"emoji"`
	Notes   *string `json:"notes" binding:"omitempty,max=500"`
}

// AddJournalEntry handles POST /api/children/:id/journal.
func (h *Handler) AddJournalEntry(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	saved, unlocked := h.svc.Tracker.SaveJournalEntry(c.Request.Context(), journal.Entry{
		ChildID:      ch.ID,
		FeelingName:  req.Feeling,
		FeelingEmoji: req.Emoji,
		Notes:        req.Notes,
	})
	c.JSON(http.StatusCreated, gin.H{"entry": saved, "unlocked": nonNil(unlocked)})
}

// DeleteJournalEntry handles DELETE /api/children/:id/journal/:entry.
func (h *Handler) DeleteJournalEntry(c *gin.Context) {
	ch, ok := h.lookupChild(c)
	if !ok {
		return
	}
	if err := h.svc.Journal.Delete(c.Request.Context(), ch.ID, c.Param("entry")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// nonNil keeps empty lists as [] in JSON.
func nonNil(a []achievement.Achievement) []achievement.Achievement {
	if a == nil {
		return []achievement.Achievement{}
	}
	return a
}

package handler

import (
	"net/http"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/engine"
)

type AcceptQuestRequest struct {
	VisitorID string `json:"visitorId" validate:"required"`
	QuestID   string `json:"questId" validate:"required"`
}

func HandleAcceptQuest(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AcceptQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Accept quest"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.AcceptQuest{VisitorID: req.VisitorID, QuestID: req.QuestID})
	}
}

func HandleDismissVisitor(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAction(w, r, eng, engine.DismissVisitor{})
	}
}

func HandleCheckVisitorSpawn(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAction(w, r, eng, engine.CheckVisitorSpawn{})
	}
}

// VisitorView describes the present visitor and what they offer.
type VisitorView struct {
	Visitor *domain.Visitor     `json:"visitor,omitempty"`
	Offered []domain.Quest      `json:"offeredQuests,omitempty"`
	Quest   *domain.ActiveQuest `json:"activeQuest,omitempty"`
}

// HandleGetVisitor returns the current visitor, their offered quests minus
// the ones already completed, and the active quest record.
func HandleGetVisitor(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := eng.Snapshot()
		cat := eng.Catalog()

		view := VisitorView{Quest: state.Quest}
		if state.CurrentVisitor != "" {
			if visitor := cat.Visitor(state.CurrentVisitor); visitor != nil {
				view.Visitor = visitor
				for _, qid := range visitor.Quests {
					if state.QuestDone(qid) {
						continue
					}
					if q := cat.Quest(qid); q != nil {
						view.Offered = append(view.Offered, *q)
					}
				}
			}
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: view})
	}
}

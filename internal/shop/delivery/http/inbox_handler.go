package http

import (
	"net/http"

	"github.com/tair/shop-console/internal/inbox"
	"github.com/tair/shop-console/internal/shop/usecase/query"
)

// ListInbox handles GET /api/inbox?lane=manual|auto
// @Summary List inbox
// @Description Messages of one lane, newest first
// @Tags Inbox
// @Produce json
// @Param lane query string false "manual or auto"
// @Success 200 {object} object{success=bool,data=object{messages=array,manualCount=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/inbox [get]
func (h *ShopHandler) ListInbox(w http.ResponseWriter, r *http.Request) {
	messages, err := h.inbox.List(inbox.Lane(r.URL.Query().Get("lane")))
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"messages":    messages,
			"manualCount": h.inbox.ManualCount(),
		},
	})
}

// ReceiveMessage handles POST /api/inbox
// @Summary Receive a message
// @Description Classifies and stores an inbound message
// @Tags Inbox
// @Accept json
// @Produce json
// @Param request body object{username=string,content=string} true "Message"
// @Success 201 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/inbox [post]
func (h *ShopHandler) ReceiveMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Content  string `json:"content"`
	}
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.inbox.Receive(r.Context(), req.Username, req.Content)
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusCreated, Response{Success: true, Data: msg})
}

// ClassifyMessage handles POST /api/classify. Nothing is stored.
// @Summary Classify a message
// @Description Dry run of the triage rules
// @Tags Inbox
// @Accept json
// @Produce json
// @Param request body object{text=string,sender=string} true "Message"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/classify [post]
func (h *ShopHandler) ClassifyMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		Sender string `json:"sender"`
	}
	if !decode(w, r, &req) {
		return
	}

	result, err := h.qry.Classify.Handle(r.Context(), query.ClassifyMessageQuery{Text: req.Text, Sender: req.Sender})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

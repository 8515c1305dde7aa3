package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/iryspinter/backend/internal/models"
	"github.com/iryspinter/backend/internal/notifier"
)

type commentHandlerFixture struct {
	pins     *memPinRepo
	comments *memCommentRepo
	notifs   *memNotificationRepo
	handler  *CommentHandler
}

func newCommentHandlerFixture() *commentHandlerFixture {
	pins := newMemPinRepo()
	comments := newMemCommentRepo()
	notifs := newMemNotificationRepo()
	n := notifier.New(notifs, newMemUserRepo(), nil)
	return &commentHandlerFixture{
		pins:     pins,
		comments: comments,
		notifs:   notifs,
		handler:  NewCommentHandler(comments, pins, n),
	}
}

func TestCreateComment(t *testing.T) {
	f := newCommentHandlerFixture()
	pinID := f.pins.add(&models.Pin{Title: "Sunset", Owner: "0xA", MintAddress: "mintX"})

	c, rec := newJSONContext(t, http.MethodPost, `{"user":"0xB","content":"lovely colors","txid":"irys-receipt-1"}`)
	c.SetParamNames("id")
	c.SetParamValues(pinID)
	if err := f.handler.CreateComment(c); err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var comment models.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &comment); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if comment.Content != "lovely colors" || comment.Txid != "irys-receipt-1" {
		t.Errorf("unexpected comment: %+v", comment)
	}

	if f.pins.pins[pinID].Comments != 1 {
		t.Errorf("denormalized counter should be 1, got %d", f.pins.pins[pinID].Comments)
	}

	if len(f.notifs.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifs.notifications))
	}
	if n := f.notifs.notifications[0]; n.Recipient != "0xA" || n.Type != models.NotificationTypeComment {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestCreateCommentEmptyContent(t *testing.T) {
	f := newCommentHandlerFixture()
	pinID := f.pins.add(&models.Pin{Title: "Sunset", Owner: "0xA", MintAddress: "mintX"})

	c, _ := newJSONContext(t, http.MethodPost, `{"user":"0xB","content":""}`)
	c.SetParamNames("id")
	c.SetParamValues(pinID)

	err := f.handler.CreateComment(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
	if count, _ := f.comments.GetCommentsCountByPinID(pinID); count != 0 {
		t.Error("no comment should be stored on validation failure")
	}
}

func TestCreateCommentUnknownPin(t *testing.T) {
	f := newCommentHandlerFixture()

	c, _ := newJSONContext(t, http.MethodPost, `{"user":"0xB","content":"hi"}`)
	c.SetParamNames("id")
	c.SetParamValues("64b0c0ffee0000000000beef")

	err := f.handler.CreateComment(c)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if code := httpStatus(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestCreateCommentByOwnerIsNotNotified(t *testing.T) {
	f := newCommentHandlerFixture()
	pinID := f.pins.add(&models.Pin{Title: "Sunset", Owner: "0xA", MintAddress: "mintX"})

	c, _ := newJSONContext(t, http.MethodPost, `{"user":"0xA","content":"my own pin"}`)
	c.SetParamNames("id")
	c.SetParamValues(pinID)
	if err := f.handler.CreateComment(c); err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}

	if f.pins.pins[pinID].Comments != 1 {
		t.Error("owner comments still count")
	}
	if len(f.notifs.notifications) != 0 {
		t.Errorf("owner commenting on their own pin should not notify, got %d", len(f.notifs.notifications))
	}
}

func TestCommentCounterMatchesLedger(t *testing.T) {
	f := newCommentHandlerFixture()
	pinID := f.pins.add(&models.Pin{Title: "Sunset", Owner: "0xA", MintAddress: "mintX"})

	for _, body := range []string{
		`{"user":"0xB","content":"first"}`,
		`{"user":"0xC","content":"second"}`,
		`{"user":"0xB","content":"third"}`,
	} {
		c, _ := newJSONContext(t, http.MethodPost, body)
		c.SetParamNames("id")
		c.SetParamValues(pinID)
		if err := f.handler.CreateComment(c); err != nil {
			t.Fatalf("CreateComment returned error: %v", err)
		}
	}

	count, _ := f.comments.GetCommentsCountByPinID(pinID)
	if f.pins.pins[pinID].Comments != int(count) {
		t.Errorf("counter %d diverged from ledger count %d", f.pins.pins[pinID].Comments, count)
	}
	if count != 3 {
		t.Errorf("expected 3 comments, got %d", count)
	}
}

func TestGetCommentsUnknownPin(t *testing.T) {
	f := newCommentHandlerFixture()

	c, _ := newJSONContext(t, http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("64b0c0ffee0000000000beef")

	err := f.handler.GetCommentsByPinID(c)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if code := httpStatus(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestGetCommentsMostRecentFirst(t *testing.T) {
	f := newCommentHandlerFixture()
	pinID := f.pins.add(&models.Pin{Title: "Sunset", Owner: "0xA", MintAddress: "mintX"})
	f.comments.CreateComment(&models.Comment{PinID: pinID, UserAddress: "0xB", Content: "first"})
	f.comments.CreateComment(&models.Comment{PinID: pinID, UserAddress: "0xC", Content: "second"})

	c, rec := newJSONContext(t, http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues(pinID)
	if err := f.handler.GetCommentsByPinID(c); err != nil {
		t.Fatalf("GetCommentsByPinID returned error: %v", err)
	}

	var comments []models.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &comments); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Content != "second" {
		t.Errorf("expected most recent comment first, got %q", comments[0].Content)
	}
}

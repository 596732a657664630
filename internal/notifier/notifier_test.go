package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/model"
)

func buyResult() *model.AnalysisResult {
	stop, target := 97.0, 106.0
	return &model.AnalysisResult{
		Symbol:          "AAPL",
		Price:           100,
		Change:          -1.5,
		ChangePercent:   -1.48,
		WyckoffPhase:    model.PhaseMarkup,
		VSASignal:       model.VSANoSupply,
		VCPStatus:       model.VCPBase,
		CPPBias:         model.BiasBullish,
		CandlePower:     70,
		IsHaka:          true,
		Suggestion:      model.SuggestionBuy,
		Confidence:      78,
		BullScore:       12,
		BearScore:       1,
		ConfluenceBonus: 8,
		Reasons:         []string{"Wyckoff MARKUP phase", "Volume <2x> average"},
		StopLoss:        &stop,
		Target:          &target,
		MA20:            98.125,
		MA50:            95,
		MA200:           90,
		RMV:             18,
	}
}

func TestFormatAnalysis(t *testing.T) {
	msg := FormatAnalysis(buyResult())

	assert.Contains(t, msg, "<b>AAPL</b>")
	assert.Contains(t, msg, "Price: 100.00 (-1.50, -1.48%)")
	assert.Contains(t, msg, "🟢 <b>BUY</b> | confidence 78%")
	assert.Contains(t, msg, "bull 12 / bear 1 (+8 confluence)")
	assert.Contains(t, msg, "VCP: VCP BASE (RMV 18)")
	assert.Contains(t, msg, "HAKA cooldown: yes")
	assert.Contains(t, msg, "MA20 98.13")
	assert.Contains(t, msg, "Stop: 97.00 | Target: 106.00 | R:R 2.0")
	assert.Contains(t, msg, "Volume &lt;2x&gt; average", "reasons are HTML-escaped")
}

func TestFormatAnalysis_NoLevels(t *testing.T) {
	r := buyResult()
	r.Suggestion = model.SuggestionWatch
	r.StopLoss, r.Target = nil, nil
	r.ConfluenceBonus = 0

	msg := FormatAnalysis(r)
	assert.NotContains(t, msg, "Levels")
	assert.NotContains(t, msg, "confluence")
	assert.Contains(t, msg, "⚪ <b>WATCH</b>")
}

func TestFormatAnalysis_InsufficientData(t *testing.T) {
	r := &model.AnalysisResult{
		Symbol:       "TINY",
		WyckoffPhase: model.PhaseUnknown,
		Suggestion:   model.SuggestionWatch,
		Reasons:      []string{"Insufficient data (need at least 50 valid bars)"},
	}
	msg := FormatAnalysis(r)
	assert.NotContains(t, msg, "Signals")
	assert.Contains(t, msg, "Insufficient data")
}

func TestRiskReward(t *testing.T) {
	assert.Equal(t, "2.0", riskReward(100, 97, 106))
	assert.Equal(t, "2.7", riskReward(100, 101.5, 96))
	assert.Equal(t, "", riskReward(100, 100, 110))
}

func TestFormatError(t *testing.T) {
	msg := FormatError("X<Y", errors.New("boom & bust"))
	assert.Contains(t, msg, "X&lt;Y")
	assert.Contains(t, msg, "boom &amp; bust")
}

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	require.NoError(t, tn.Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSend_TruncatesLongMessages(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	require.NoError(t, tn.Send(context.Background(), strings.Repeat("a", 5000)))
	assert.Len(t, got["text"], maxMessageLen)
}

func TestTruncateHTML(t *testing.T) {
	short := "<b>AAPL</b> BUY"
	assert.Equal(t, short, truncateHTML(short, 20))

	// Multi-byte runes straddling the cut stay whole.
	got := truncateHTML(strings.Repeat("é", 30), 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)

	// A tag cut in half is dropped and open tags are closed.
	got = truncateHTML("<b>"+strings.Repeat("x", 5)+"<i>more</i></b>", 13)
	assert.Equal(t, "<b>"+strings.Repeat("x", 5)+"...</b>", got)

	got = truncateHTML("<b>price</b> <code>"+strings.Repeat("y", 20)+"</code>", 25)
	assert.Equal(t, "<b>price</b> <code>"+strings.Repeat("y", 3)+"...</code>", got)

	// A partial entity is dropped.
	assert.Equal(t, "a ...", truncateHTML("a &amp; b &lt; c", 9))
	assert.Equal(t, "abc ...", truncateHTML("abc &lt; def", 8))
}

func TestSend_TruncatesMultiByteHTML(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	require.NoError(t, tn.Send(context.Background(), "<b>"+strings.Repeat("📈", 5000)+"</b>"))
	assert.True(t, utf8.ValidString(got["text"]))
	assert.True(t, strings.HasSuffix(got["text"], "...</b>"))
	assert.LessOrEqual(t, utf8.RuneCountInString(got["text"]), maxMessageLen+len("</b>"))
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Forbidden"}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	err := tn.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestStartPolling(t *testing.T) {
	var polls atomic.Int32
	replies := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			if polls.Add(1) == 1 {
				assert.Equal(t, "0", r.URL.Query().Get("offset"))
				_, _ = w.Write([]byte(`{"ok":true,"result":[
					{"update_id":7,"message":{"text":"/help","chat":{"id":42}}},
					{"update_id":8,"message":{"text":"/analyze AAPL","chat":{"id":99}}}
				]}`))
				return
			}
			assert.Equal(t, "9", r.URL.Query().Get("offset"))
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
		case "/botTOKEN/sendMessage":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			replies <- body["text"]
		}
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	var handled []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		tn.StartPolling(ctx, func(_ context.Context, cmd string) string {
			handled = append(handled, cmd)
			return "reply to " + cmd
		})
	}()

	select {
	case reply := <-replies:
		assert.Equal(t, "reply to /help", reply)
	case <-time.After(2 * time.Second):
		t.Fatal("no reply sent")
	}
	require.Eventually(t, func() bool { return polls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []string{"/help"}, handled, "commands from other chats are ignored")
}

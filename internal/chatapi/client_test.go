package chatapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Message)
		assert.Equal(t, "Min", req.UserName)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"reply": "hi there",
			"affection_level": 13,
			"affection_change": 3,
			"emotion": "happy",
			"emotion_intensity": 6,
			"events": [{"type": "special_conversation", "message": "psst"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	reply, err := client.Chat(context.Background(), "hello", "Min")
	require.NoError(t, err)

	assert.Equal(t, "hi there", reply.Reply)
	require.NotNil(t, reply.AffectionLevel)
	assert.Equal(t, 13, *reply.AffectionLevel)
	assert.Equal(t, 3, reply.AffectionChange)
	assert.Equal(t, "happy", reply.Emotion)
	require.Len(t, reply.Events, 1)
	assert.Equal(t, "special_conversation", reply.Events[0].Type)
}

func TestChatOmittedFieldsStayZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"reply": "just words"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	reply, err := client.Chat(context.Background(), "hello", "Min")
	require.NoError(t, err)

	assert.Equal(t, "just words", reply.Reply)
	assert.Nil(t, reply.AffectionLevel)
	assert.Zero(t, reply.AffectionChange)
	assert.Empty(t, reply.Emotion)
	assert.Empty(t, reply.Events)
}

func TestChatNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Chat(context.Background(), "hello", "Min")
	assert.Error(t, err)
}

func TestChatTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, time.Second)
	_, err := client.Chat(context.Background(), "hello", "Min")
	assert.Error(t, err)
}

func TestNotifyNewUser(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/new-user", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		// Body content is ignored by the client.
		_, _ = w.Write([]byte(`{"whatever": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	require.NoError(t, client.NotifyNewUser(context.Background(), "Min"))
	assert.Equal(t, "", got.Message)
	assert.Equal(t, "Min", got.UserName)
}

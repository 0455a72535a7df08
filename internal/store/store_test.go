package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent_ShortHistory(t *testing.T) {
	s := openTestStore(t)

	chatID, err := s.CreateChat("short history")
	require.NoError(t, err)

	for i, text := range []string{"first", "second", "third"} {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		id, err := s.AppendMessage(chatID, role, text)
		require.NoError(t, err)
		require.Positive(t, id)
	}

	got, err := s.RecentMessages(chatID, 5)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "first", got[0].Content)
	require.Equal(t, "second", got[1].Content)
	require.Equal(t, "third", got[2].Content)
}

func TestRecent_WindowsLongHistory(t *testing.T) {
	s := openTestStore(t)

	chatID, err := s.CreateChat("long history")
	require.NoError(t, err)

	for i := 1; i <= 8; i++ {
		_, err := s.AppendMessage(chatID, RoleUser, fmt.Sprintf("msg-%d", i))
		require.NoError(t, err)
	}

	got, err := s.RecentMessages(chatID, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, m := range got {
		require.Equal(t, fmt.Sprintf("msg-%d", i+4), m.Content, "window must keep chronological order")
	}
}

func TestRecent_ZeroWindow(t *testing.T) {
	s := openTestStore(t)

	chatID, err := s.CreateChat("zero")
	require.NoError(t, err)
	_, err = s.AppendMessage(chatID, RoleUser, "hello")
	require.NoError(t, err)

	got, err := s.RecentMessages(chatID, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRecent_UnknownChat(t *testing.T) {
	s := openTestStore(t)

	got, err := s.RecentMessages("no-such-chat", 5)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestHistory_ReturnsAllMessagesInOrder(t *testing.T) {
	s := openTestStore(t)

	chatID, err := s.CreateChat("full")
	require.NoError(t, err)
	for i := 1; i <= 7; i++ {
		_, err := s.AppendMessage(chatID, RoleAssistant, fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	got, err := s.History(chatID)
	require.NoError(t, err)
	require.Len(t, got, 7)
	require.Equal(t, "m1", got[0].Content)
	require.Equal(t, "m7", got[6].Content)
}

func TestDeleteChat_RemovesMessages(t *testing.T) {
	s := openTestStore(t)

	chatID, err := s.CreateChat("doomed")
	require.NoError(t, err)
	_, err = s.AppendMessage(chatID, RoleUser, "bye")
	require.NoError(t, err)

	require.NoError(t, s.DeleteChat(chatID))

	got, err := s.History(chatID)
	require.NoError(t, err)
	require.Empty(t, got)

	err = s.DeleteChat(chatID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListChats_MostRecentFirst(t *testing.T) {
	s := openTestStore(t)

	a, err := s.CreateChat("a")
	require.NoError(t, err)
	b, err := s.CreateChat("b")
	require.NoError(t, err)

	// Activity on a makes it the most recent chat.
	_, err = s.AppendMessage(a, RoleUser, "ping")
	require.NoError(t, err)

	chats, err := s.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 2)
	require.Equal(t, a, chats[0].ID)
	require.Equal(t, b, chats[1].ID)
}

func TestPrompts_CRUD(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SavePrompt("personality_friendly", "Be warm.", "Friendly personality prompt", true))

	p, err := s.Prompt("personality_friendly")
	require.NoError(t, err)
	require.Equal(t, "Be warm.", p.Content)
	require.True(t, p.IsDefault)

	// Saving again updates in place.
	require.NoError(t, s.SavePrompt("personality_friendly", "Be warmer.", "Friendly personality prompt", true))
	p, err = s.Prompt("personality_friendly")
	require.NoError(t, err)
	require.Equal(t, "Be warmer.", p.Content)

	all, err := s.ListPrompts()
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, s.DeletePrompt("personality_friendly"))
	_, err = s.Prompt("personality_friendly")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.DeletePrompt("personality_friendly"), ErrNotFound)
}

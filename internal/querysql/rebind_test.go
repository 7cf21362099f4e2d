package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind_Dollar(t *testing.T) {
	got := Rebind(Dollar, "UPDATE users SET age = ? WHERE name = ? AND id IN (?, ?)")
	assert.Equal(t, "UPDATE users SET age = $1 WHERE name = $2 AND id IN ($3, $4)", got)
}

func TestRebind_QuestionIsIdentity(t *testing.T) {
	sql := "DELETE FROM sessions WHERE id = ? LIMIT 1"
	assert.Equal(t, sql, Rebind(Question, sql))
}

func TestRebind_NoPlaceholders(t *testing.T) {
	assert.Equal(t, "SELECT * FROM users", Rebind(Dollar, "SELECT * FROM users"))
}

func TestRebind_SkipsQuotedText(t *testing.T) {
	got := Rebind(Dollar, `SELECT * FROM "what?" WHERE a = '?' AND b = ? AND c = `+"`?`"+` AND d = ?`)
	assert.Equal(t, `SELECT * FROM "what?" WHERE a = '?' AND b = $1 AND c = `+"`?`"+` AND d = $2`, got)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count("SELECT * FROM users"))
	assert.Equal(t, 3, Count("INSERT INTO t SET a = ?, b = ?, c = ?"))
	assert.Equal(t, 1, Count("SELECT * FROM t WHERE a = '?' AND b = ?"))
}

func TestStyleForDriver(t *testing.T) {
	assert.Equal(t, Dollar, StyleForDriver("postgres"))
	assert.Equal(t, Dollar, StyleForDriver("PGX"))
	assert.Equal(t, Question, StyleForDriver("sqlite3"))
	assert.Equal(t, Question, StyleForDriver("mysql"))
	assert.Equal(t, Question, StyleForDriver("unknown"))
}

func TestStyle_String(t *testing.T) {
	assert.Equal(t, "question", Question.String())
	assert.Equal(t, "dollar", Dollar.String())
	assert.Equal(t, "Style(5)", Style(5).String())
}

package database

import (
	"database/sql"
	"errors"
	"sync"

	"GoBotExt/core"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schema = `
CREATE TABLE IF NOT EXISTS userrole ( id INTEGER PRIMARY KEY AUTOINCREMENT , role INTEGER, user_id VARCHAR );
CREATE UNIQUE INDEX IF NOT EXISTS userrole_user_id_index ON userrole (user_id);
CREATE INDEX IF NOT EXISTS userrole_role_index ON userrole (role);

CREATE TABLE IF NOT EXISTS guildprefix ( guild_id VARCHAR PRIMARY KEY, prefix VARCHAR NOT NULL );
`

// Role is the bot-level permission tier of a user, independent of Discord roles.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	default:
		return "user"
	}
}

type UserRole struct {
	Id     int
	Role   Role
	UserId string `db:"user_id"`
}

type GuildPrefix struct {
	GuildId string `db:"guild_id"`
	Prefix  string
}

var database *sqlx.DB
var mu sync.RWMutex

func InitalizeDatabase() {
	if err := Open(core.Settings.Database()); err != nil {
		core.LogFatal("Failed to create database: ", err)
	}
}

// Open connects to the sqlite database at path and creates missing tables.
func Open(path string) error {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return err
	}
	if path == ":memory:" {
		// Every pooled connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	// sqlite3 executes multi-statement strings; other drivers may not.
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return err
	}
	mu.Lock()
	database = db
	mu.Unlock()
	return nil
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if database != nil {
		database.Close()
		database = nil
	}
}

// FetchGuildPrefix returns the custom prefix for a guild, or nil when the default applies.
func FetchGuildPrefix(guildId string) *string {
	mu.RLock()
	defer mu.RUnlock()
	if database == nil {
		core.LogError("Database isn't open. Shouldn't happen.")
		return nil
	}
	var prefix GuildPrefix
	err := database.Get(&prefix, "SELECT * FROM guildprefix WHERE guild_id=$1", guildId)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			core.LogErrorF("Failed to fetch prefix for guild %s: %s", guildId, err)
		}
		return nil
	}
	return &prefix.Prefix
}

func SetGuildPrefix(guildId, prefix string) error {
	mu.Lock()
	defer mu.Unlock()
	if database == nil {
		return errors.New("database not open")
	}
	_, err := database.Exec(`INSERT INTO guildprefix (guild_id, prefix) VALUES ($1, $2)
		ON CONFLICT(guild_id) DO UPDATE SET prefix=excluded.prefix`, guildId, prefix)
	if err == nil {
		core.LogDebugF("Prefix for guild %s set to %q", guildId, prefix)
	}
	return err
}

func ClearGuildPrefix(guildId string) error {
	mu.Lock()
	defer mu.Unlock()
	if database == nil {
		return errors.New("database not open")
	}
	_, err := database.Exec("DELETE FROM guildprefix WHERE guild_id=$1", guildId)
	return err
}

// FetchUserRole returns the stored role for a user. Unknown users are RoleUser.
func FetchUserRole(userId string) Role {
	mu.RLock()
	defer mu.RUnlock()
	if database == nil {
		core.LogError("Database isn't open. Shouldn't happen.")
		return RoleUser
	}
	var role UserRole
	err := database.Get(&role, "SELECT * FROM userrole WHERE user_id=$1", userId)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			core.LogErrorF("Failed to fetch role for user %s: %s", userId, err)
		}
		return RoleUser
	}
	return role.Role
}

func SetUserRole(userId string, role Role) error {
	mu.Lock()
	defer mu.Unlock()
	if database == nil {
		return errors.New("database not open")
	}
	_, err := database.Exec(`INSERT INTO userrole (role, user_id) VALUES ($1, $2)
		ON CONFLICT(user_id) DO UPDATE SET role=excluded.role`, int(role), userId)
	if err == nil {
		core.LogDebugF("Role for user %s set to %s", userId, role)
	}
	return err
}

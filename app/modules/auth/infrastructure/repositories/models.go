package userdb

import (
	"github.com/uptrace/bun"
)

// User is a staff account. Roles are stored denormalized as a text array; the
// role-to-permission mapping itself is static code, not data.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	Name         string   `bun:"name,pk" json:"name"`
	PasswordHash string   `bun:"password_hash,notnull" json:"-"`
	Roles        []string `bun:"roles,array" json:"roles"`
}

// UserStation assigns a user to a station for station-scoped mutations.
type UserStation struct {
	bun.BaseModel `bun:"table:user_stations,alias:us"`

	UserName    string `bun:"user_name,pk" json:"user"`
	StationName string `bun:"station_name,pk" json:"station"`
}

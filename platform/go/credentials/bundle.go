package credentials

import (
	"fmt"
	"strings"
)

// Bundle is the set of secrets generated once per site.
type Bundle struct {
	SiteOwner     string
	DBName        string
	DBUsername    string
	DBPassword    string
	AdminUser     string
	AdminPassword string
}

// BundlePolicy controls the lengths and prefixes used by NewBundle.
type BundlePolicy struct {
	SiteOwnerMaxLength  int
	DBNameMaxLength     int
	DBUserMaxLength     int
	DBPasswordLength    int
	AdminUserMaxLength  int
	AdminPasswordLength int
	DBNamePrefix        string
	DBUserPrefix        string
}

// DefaultBundlePolicy keeps identifiers within MySQL/MariaDB limits (64 for
// database names, 32 for users) and system usernames within 16 characters.
func DefaultBundlePolicy() BundlePolicy {
	return BundlePolicy{
		SiteOwnerMaxLength:  16,
		DBNameMaxLength:     24,
		DBUserMaxLength:     16,
		DBPasswordLength:    24,
		AdminUserMaxLength:  12,
		AdminPasswordLength: 16,
		DBNamePrefix:        "db",
		DBUserPrefix:        "u",
	}
}

// NewBundle generates a complete credential bundle.
func (g *Generator) NewBundle(policy BundlePolicy) (Bundle, error) {
	owner, err := g.GenerateUsername(policy.SiteOwnerMaxLength, "")
	if err != nil {
		return Bundle{}, fmt.Errorf("site owner: %w", err)
	}
	dbName, err := g.GenerateUsername(policy.DBNameMaxLength, policy.DBNamePrefix)
	if err != nil {
		return Bundle{}, fmt.Errorf("db name: %w", err)
	}
	dbUser, err := g.GenerateUsername(policy.DBUserMaxLength, policy.DBUserPrefix)
	if err != nil {
		return Bundle{}, fmt.Errorf("db user: %w", err)
	}
	dbPassword, err := g.GeneratePassword(policy.DBPasswordLength)
	if err != nil {
		return Bundle{}, fmt.Errorf("db password: %w", err)
	}
	adminUser, err := g.GenerateUsername(policy.AdminUserMaxLength, "")
	if err != nil {
		return Bundle{}, fmt.Errorf("admin user: %w", err)
	}
	adminPassword, err := g.GeneratePassword(policy.AdminPasswordLength)
	if err != nil {
		return Bundle{}, fmt.Errorf("admin password: %w", err)
	}

	return Bundle{
		// System accounts are lowercase on every distro we target.
		SiteOwner:     strings.ToLower(owner),
		DBName:        dbName,
		DBUsername:    dbUser,
		DBPassword:    dbPassword,
		AdminUser:     adminUser,
		AdminPassword: adminPassword,
	}, nil
}

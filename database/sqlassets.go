package sqlassets

import _ "embed"

//go:embed schema/schema.sql
var SchemaSQL string

//go:embed schema/hosting_servers.sql
var HostingServersSQL string

//go:embed schema/site_templates.sql
var SiteTemplatesSQL string

//go:embed schema/user_sites.sql
var UserSitesSQL string

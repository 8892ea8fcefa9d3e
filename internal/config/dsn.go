package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
)

// DSNValue returns the driver-specific connection string. An explicit DSN wins.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case DriverMySQL:
		return c.mysqlDSN()
	case DriverPostgres:
		return c.postgresDSN()
	default:
		return c.sqliteDSN()
	}
}

func (c DatabaseRuntimeConfig) sqliteDSN() string {
	path := c.Path
	if path == "" {
		path = defaultSQLitePath
	}
	params := neturl.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", "5000")
	for k, v := range c.Params {
		if v != "" {
			params.Set(k, v)
		}
	}
	return path + "?" + params.Encode()
}

func (c DatabaseRuntimeConfig) mysqlDSN() string {
	mc := mysqldriver.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": defaultDBCharset}
	for k, v := range c.Params {
		if v != "" {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

func (c DatabaseRuntimeConfig) postgresDSN() string {
	parts := []string{
		"host=" + c.Host,
		"port=" + strconv.Itoa(c.Port),
		"user=" + c.User,
		"dbname=" + c.Name,
	}
	if c.Password != "" {
		parts = append(parts, "password="+c.Password)
	}
	params := map[string]string{"sslmode": "disable"}
	for k, v := range c.Params {
		if v != "" {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, params[k]))
	}
	return strings.Join(parts, " ")
}

// URLValue returns the redis connection URL.
func (c RedisRuntimeConfig) URLValue() string {
	if c.URL != "" {
		return c.URL
	}

	u := &neturl.URL{
		Scheme: "redis",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Password != "" {
		u.User = neturl.UserPassword("", c.Password)
	}
	return u.String()
}

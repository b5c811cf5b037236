package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"

	"carconnect/internal/core/domain"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DatabaseProperties holds the connection parameters read from the property file
type DatabaseProperties struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Params   string
}

// LoadDatabaseProperties reads a key=value property file such as
//
//	driver=mysql
//	server=localhost:3306
//	user=root
//	password=secret
//	database=carconnect
func LoadDatabaseProperties(path string) (*DatabaseProperties, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: property file '%s' not found", domain.ErrDatabaseConnection, path)
		}
		return nil, fmt.Errorf("%w: open property file: %v", domain.ErrDatabaseConnection, err)
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: parse property file '%s': %v", domain.ErrDatabaseConnection, path, err)
	}

	return ParseDatabaseProperties(values)
}

// ParseDatabaseProperties validates parsed properties
func ParseDatabaseProperties(values map[string]string) (*DatabaseProperties, error) {
	get := func(key string) string {
		return strings.TrimSpace(values[key])
	}

	props := &DatabaseProperties{
		Driver:   strings.ToLower(get("driver")),
		Host:     get("server"),
		Port:     get("port"),
		User:     get("user"),
		Password: get("password"),
		DBName:   get("database"),
		Params:   get("params"),
	}
	if props.Driver == "" {
		props.Driver = DriverMySQL
	}

	switch props.Driver {
	case DriverMySQL:
		if props.Host == "" || props.DBName == "" {
			return nil, fmt.Errorf("%w: missing required connection properties (server, database)", domain.ErrDatabaseConnection)
		}
		// server may carry the port, as in server=db.local:3307
		if host, port, err := net.SplitHostPort(props.Host); err == nil {
			props.Host = host
			if props.Port == "" {
				props.Port = port
			}
		}
		if props.Port == "" {
			props.Port = "3306"
		}
		if props.User == "" {
			props.User = "root"
		}
	case DriverSQLite:
		if props.DBName == "" {
			return nil, fmt.Errorf("%w: missing required connection property (database)", domain.ErrDatabaseConnection)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported driver '%s'", domain.ErrDatabaseConnection, props.Driver)
	}

	return props, nil
}

// DSN returns the database connection string for the configured driver
func (p DatabaseProperties) DSN() string {
	if p.Driver == DriverSQLite {
		if p.Params != "" {
			return p.DBName + "?" + p.Params
		}
		return p.DBName
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
	)
	if p.Params != "" {
		dsn += "&" + p.Params
	}
	return dsn
}

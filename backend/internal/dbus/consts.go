package dbus

// Standard D-Bus names
const (
	DBUS_INTERFACE = "org.freedesktop.DBus"
	DBUS_PATH      = "/org/freedesktop/DBus"

	BUS_GET_NAME_OWNER = DBUS_INTERFACE + ".GetNameOwner"
	BUS_NAME_HAS_OWNER = DBUS_INTERFACE + ".NameHasOwner"
	DBUS_PROP_IFACE    = DBUS_INTERFACE + ".Properties"

	PROP_GET     = DBUS_PROP_IFACE + ".Get"
	PROP_SET     = DBUS_PROP_IFACE + ".Set"
	PROP_GET_ALL = DBUS_PROP_IFACE + ".GetAll"
)

// Well-known error names returned by the bus or by remote objects.
const (
	ERR_UNKNOWN_METHOD    = DBUS_INTERFACE + ".Error.UnknownMethod"
	ERR_UNKNOWN_PROPERTY  = DBUS_INTERFACE + ".Error.UnknownProperty"
	ERR_NAME_HAS_NO_OWNER = DBUS_INTERFACE + ".Error.NameHasNoOwner"
	ERR_SERVICE_UNKNOWN   = DBUS_INTERFACE + ".Error.ServiceUnknown"
)

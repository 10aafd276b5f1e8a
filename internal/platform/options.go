package platform

// AppName identifies the application to the host notification service.
const AppName = "Simple Paint"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown next to the
	// notification where the platform supports it.
	IconPath string
	// TimeoutMS is how long the notification stays visible. Zero selects
	// the platform default.
	TimeoutMS int32
}

func (o Options) timeout() int32 {
	if o.TimeoutMS <= 0 {
		return 5000
	}
	return o.TimeoutMS
}

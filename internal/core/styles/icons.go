package styles

var (
	IconCheck   = "✓"
	IconWarning = "!"
	IconError   = "✗"
	IconBullet  = "•"
)

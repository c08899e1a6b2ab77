package domain

// Display renders measurements for a human operator.
type Display interface {
	// Debug renders the complete raw frame.
	Debug(device Device, m Measurement)
	// Summary renders a one-line PM1.0/PM2.5/PM10 and AQI summary.
	Summary(device Device, m Measurement, category AqiCategory)
}

package format

const (
	// === IDENTITY & VERSIONING ===
	Version      = "1.0.0"
	ManifestKind = "HDXPIANO-MANIFEST"

	// === ENGINE SPECS ===
	SampleRate     = 48000
	Channels       = 2
	BufferMillis   = 100
	ResampleFactor = 4 // beep.Resample quality

	// === SAMPLE ADDRESSING ===
	// <SampleDir>/<key id><SampleExt>
	SampleDir = "audio"
	SampleExt = ".mp3"

	// === MASTER VOLUME ===
	VolumeMin     = 0.1
	VolumeMax     = 1.0
	VolumeStep    = 0.1
	VolumeInitial = VolumeMax

	// === IPC ===
	SocketFile = "/tmp/hdx-piano.sock"

	// === GENERATED SAMPLES ===
	ToneSeconds = 2.5
	ToneBits    = 16
)

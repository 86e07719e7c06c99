package inpaint

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvDefaults loads key=value pairs from the .env file at path into the
// process environment, grounded on Fepozopo-timp's pkg/cli/dotenv.go intent
// but backed by the real godotenv library rather than a hand-rolled parser.
// A missing file is not an error; every other read/parse failure is.
func LoadEnvDefaults(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnvDefaults fills any zero-valued Processor field from the
// corresponding INPAINT_* environment variable. It only touches fields
// still at their zero value: a non-zero field, whether set by a caller, a
// CLI flag or a flag's default, wins over the environment, while a field
// explicitly set to its zero value (including RefinerIdentity) is replaced
// whenever the matching variable is set.
func ApplyEnvDefaults(p *Processor) {
	if p.PatchRadius == 0 {
		if v, ok := envInt("INPAINT_PATCH_RADIUS"); ok {
			p.PatchRadius = v
		}
	}
	if p.K == 0 {
		if v, ok := envInt("INPAINT_K"); ok {
			p.K = v
		}
	}
	if p.Workers == 0 {
		if v, ok := envInt("INPAINT_WORKERS"); ok {
			p.Workers = v
		}
	}
	if p.BlurVariance == 0 {
		if v, ok := envFloat("INPAINT_BLUR_VARIANCE"); ok {
			p.BlurVariance = v
		}
	}
	if p.MaskPath == "" {
		if v := os.Getenv("INPAINT_MASK_PATH"); v != "" {
			p.MaskPath = v
		}
	}
	if p.RefinerKind == RefinerIdentity {
		switch strings.ToLower(os.Getenv("INPAINT_REFINER")) {
		case "introduced_energy":
			p.RefinerKind = RefinerIntroducedEnergy
		case "reuse_limited":
			p.RefinerKind = RefinerReuseLimited
		}
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

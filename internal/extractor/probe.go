package extractor

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// probeAccess validates the staged document with the supplied password
// set as both user and owner password. Run before the external attempt
// chain when a password is present; a failure here is non-fatal.
func probeAccess(path, password string) error {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	return api.ValidateFile(path, conf)
}

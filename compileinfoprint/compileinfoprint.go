// compileinfoprint is imported for the side effect of logging the build of
// the running tool to stderr before it starts work.
package compileinfoprint

import (
	"log"

	"github.com/carbocation/otutab/compileinfo"
)

func init() {
	log.Println(compileinfo.Get())
}

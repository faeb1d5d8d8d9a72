package testutil

// Shell bodies for fake engines. Each prints its argv first so tests can
// assert on the exact command line.

// EchoArgs prints every argument on its own "arg:" line.
const EchoArgs = `for a in "$@"; do echo "arg: $a"; done
`

// SampleRun prints a small real-run transcript and exits 0.
const SampleRun = `echo 'Rule "Move Docs"'
echo '✓ a.txt'
echo '  Moving "a.txt" to "/d/a.txt"'
`

// SampleSimulation prints the simulated variant of SampleRun.
const SampleSimulation = `echo 'Rule "Move Docs"'
echo '✓ a.txt'
echo '  Would move "a.txt" to "/d/a.txt"'
`

// CatConfig prints the config file passed after --config or --config-file.
const CatConfig = `while [ $# -gt 0 ]; do
  case "$1" in
    --config|--config-file) echo "config: $2"; cat "$2"; shift ;;
  esac
  shift
done
`

// Sleeper blocks until signalled.
const Sleeper = `echo started
exec sleep 30
`

// Stubborn ignores SIGINT so only a forceful kill stops it. The ignored
// disposition survives exec.
const Stubborn = `trap '' INT
echo started
exec sleep 30
`

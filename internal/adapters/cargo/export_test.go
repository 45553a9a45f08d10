package cargo

var BuildEnvironment = buildEnvironment
